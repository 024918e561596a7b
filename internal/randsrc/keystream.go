package randsrc

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/bits"
	"time"

	"golang.org/x/crypto/chacha20"
)

const (
	maxKeystreamRead     = 4 * 1024 * 1024 // 4 MiB
	maxKeystreamDuration = 20 * time.Second
)

// nonce is a 12-byte little endian counter used as an incrementing ChaCha20 nonce.
type nonce [chacha20.NonceSize]byte

func (n *nonce) inc() {
	n0 := binary.LittleEndian.Uint32(n[0:4])
	n1 := binary.LittleEndian.Uint32(n[4:8])
	n2 := binary.LittleEndian.Uint32(n[8:12])

	var carry uint32
	n0, carry = bits.Add32(n0, 1, carry)
	n1, carry = bits.Add32(n1, 0, carry)
	n2, _ = bits.Add32(n2, 0, carry)

	binary.LittleEndian.PutUint32(n[0:4], n0)
	binary.LittleEndian.PutUint32(n[4:8], n1)
	binary.LittleEndian.PutUint32(n[8:12], n2)
}

// keystream is a ChaCha20 CSPRNG rekeyed from crypto/rand after maxKeystreamRead bytes or
// maxKeystreamDuration, whichever comes first. It is not safe for concurrent use.
type keystream struct {
	key      [chacha20.KeySize]byte
	nonce    nonce
	cipher   *chacha20.Cipher
	read     int
	reseedAt time.Time
}

func newKeystream() (*keystream, error) {
	k := new(keystream)
	if err := k.reseed(); err != nil {
		return nil, fmt.Errorf("seed keystream: %w", err)
	}
	return k, nil
}

// reseed derives a new key from kernel entropy mixed with the current keystream. Only the
// initial seeding may fail: later on a failed crypto/rand read falls back to the keystream.
func (k *keystream) reseed() error {
	_, err := cryptorand.Read(k.key[:])
	if err != nil && k.cipher == nil {
		return err
	}
	if k.cipher != nil {
		k.cipher.XORKeyStream(k.key[:], k.key[:])
	}

	// Never fails with correct key and nonce sizes.
	cipher, err := chacha20.NewUnauthenticatedCipher(k.key[:], k.nonce[:])
	if err != nil {
		panic(err)
	}
	k.cipher = cipher
	k.nonce.inc()
	k.read = 0
	k.reseedAt = time.Now().Add(maxKeystreamDuration)
	return nil
}

// fill overwrites p with keystream output.
func (k *keystream) fill(p []byte) {
	if time.Now().After(k.reseedAt) {
		_ = k.reseed()
	}
	clear(p)
	for k.read+len(p) > maxKeystreamRead {
		l := maxKeystreamRead - k.read
		k.cipher.XORKeyStream(p[:l], p[:l])
		_ = k.reseed()
		p = p[l:]
	}
	k.cipher.XORKeyStream(p, p)
	k.read += len(p)
}

func (k *keystream) uint32() uint32 {
	var b [4]byte
	k.fill(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

func (k *keystream) uint64() uint64 {
	var b [8]byte
	k.fill(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// wipe erases the key material. The keystream must not be used afterwards.
func (k *keystream) wipe() {
	clear(k.key[:])
	clear(k.nonce[:])
	k.cipher = nil
}
