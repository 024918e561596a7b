package runlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alex65536/tsrand/internal/randsrc"
	"github.com/alex65536/tsrand/internal/randutil"
	"github.com/alex65536/tsrand/internal/util/slogx"
)

var ErrRunNotFound = errors.New("run not found")

type DB struct {
	db  *gorm.DB
	log *slog.Logger
	ids randsrc.Source
}

func buildPath(o Options) string {
	var params []string
	if o.UseWAL {
		params = append(params, "_journal_mode=WAL")
		params = append(params, "_synchronous=NORMAL")
	}
	params = append(params, fmt.Sprintf("_busy_timeout=%v", o.BusyTimeout.Milliseconds()))
	return o.Path + "?" + strings.Join(params, "&")
}

func New(log *slog.Logger, o Options) (*DB, error) {
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("bad options: %w", err)
	}
	o.FillDefaults()

	ids, err := randsrc.NewSecure()
	if err != nil {
		return nil, fmt.Errorf("create id source: %w", err)
	}

	log.Debug("opening run log", slog.String("path", o.Path))
	db, err := gorm.Open(sqlite.Open(buildPath(o)), &gorm.Config{
		Logger: newLogger(log, o),
	})
	if err != nil {
		_ = ids.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}
	d := &DB{db: db, log: log, ids: ids}

	if err := db.AutoMigrate(models...); err != nil {
		d.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	return d, nil
}

func (d *DB) Close() {
	if err := d.ids.Close(); err != nil {
		d.log.Error("could not release id source", slogx.Err(err))
	}
	db, err := d.db.DB()
	if err != nil {
		d.log.Error("could not get underlying db", slogx.Err(err))
		return
	}
	if err := db.Close(); err != nil {
		d.log.Error("could not close db", slogx.Err(err))
	}
}

// Record samples the requested sequence and stores it under a fresh ID and name.
func (d *DB) Record(ctx context.Context, req Request) (Run, error) {
	run, err := Sample(req)
	if err != nil {
		return Run{}, err
	}
	if err := d.CreateRun(ctx, &run); err != nil {
		return Run{}, err
	}
	d.log.Info("run recorded",
		slog.String("id", run.ID),
		slog.String("name", run.Name),
		slog.String("kind", run.Kind.String()),
		slogx.Seed(run.Seed),
		slog.Int("count", run.Count),
	)
	return run, nil
}

// CreateRun stores run, filling in its ID and name if they are empty.
func (d *DB) CreateRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		id, err := randutil.ID(d.ids)
		if err != nil {
			return fmt.Errorf("generate id: %w", err)
		}
		run.ID = id
	}
	if run.Name == "" {
		run.Name = petname.Generate(2, "-")
	}
	if err := d.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// GetRun looks a run up by ID or, failing that, by name.
func (d *DB) GetRun(ctx context.Context, idOrName string) (Run, error) {
	var runs []Run
	err := d.db.WithContext(ctx).
		Where("id = ? OR name = ?", idOrName, idOrName).
		Order("created_at DESC").
		Limit(1).
		Find(&runs).Error
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	if len(runs) == 0 {
		return Run{}, ErrRunNotFound
	}
	return runs[0], nil
}

// ListRuns returns up to limit most recent runs without their values. Non-positive limit
// means no limit.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	tx := d.db.WithContext(ctx).Omit("ints", "floats").Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

func (d *DB) DeleteRun(ctx context.Context, id string) error {
	res := d.db.WithContext(ctx).Delete(&Run{ID: id})
	if err := res.Error; err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if res.RowsAffected == 0 {
		return ErrRunNotFound
	}
	return nil
}
