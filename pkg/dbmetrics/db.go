package dbmetrics

import (
	"context"
	"database/sql"
	"time"
)

// defaultPoolStatsInterval интервал сбора статистики connection pool
const defaultPoolStatsInterval = 15 * time.Second

// Recorder интерфейс для записи метрик БД
// Реализуется pkg/metrics.Metrics
type Recorder interface {
	ObserveDBQuery(service, operation string, duration time.Duration, success bool)
	SetDBPoolStat(service, stat string, value float64)
}

// DB обертка над *sql.DB, записывающая метрики по каждому запросу
type DB struct {
	db       *sql.DB
	recorder Recorder
	service  string
}

// Wrap оборачивает *sql.DB сборщиком метрик
func Wrap(db *sql.DB, recorder Recorder, service string) *DB {
	return &DB{db: db, recorder: recorder, service: service}
}

// WrapWithDefault оборачивает *sql.DB и запускает периодический сбор
// статистики connection pool до закрытия stopCh
func WrapWithDefault(db *sql.DB, recorder Recorder, service string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, recorder, service)
	go wrapped.collectPoolStats(defaultPoolStatsInterval, stopCh)
	return wrapped
}

// ExecContext выполняет запрос без возврата строк
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(d.service, "exec", time.Since(start), err == nil)
	return res, err
}

// QueryContext выполняет запрос с возвратом строк
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(d.service, "query", time.Since(start), err == nil)
	return rows, err
}

// QueryRowContext выполняет запрос с возвратом одной строки
// Ошибка откладывается до Scan, поэтому считаем запрос успешным
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.recorder.ObserveDBQuery(d.service, "query_row", time.Since(start), true)
	return row
}

// BeginTx начинает транзакцию с метриками
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, recorder: d.recorder, service: d.service, started: time.Now()}, nil
}

// collectPoolStats периодически записывает статистику connection pool
func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.recorder.SetDBPoolStat(d.service, "open_connections", float64(stats.OpenConnections))
			d.recorder.SetDBPoolStat(d.service, "in_use", float64(stats.InUse))
			d.recorder.SetDBPoolStat(d.service, "idle", float64(stats.Idle))
			d.recorder.SetDBPoolStat(d.service, "wait_count", float64(stats.WaitCount))
		}
	}
}

// Tx обертка над *sql.Tx с метриками
type Tx struct {
	tx       *sql.Tx
	recorder Recorder
	service  string
	started  time.Time
}

// ExecContext выполняет запрос внутри транзакции
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.recorder.ObserveDBQuery(t.service, "tx_exec", time.Since(start), err == nil)
	return res, err
}

// QueryContext выполняет запрос внутри транзакции
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.recorder.ObserveDBQuery(t.service, "tx_query", time.Since(start), err == nil)
	return rows, err
}

// QueryRowContext выполняет запрос внутри транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.recorder.ObserveDBQuery(t.service, "tx_query_row", time.Since(start), true)
	return row
}

// Commit фиксирует транзакцию и записывает её длительность
func (t *Tx) Commit() error {
	err := t.tx.Commit()
	t.recorder.ObserveDBQuery(t.service, "tx_commit", time.Since(t.started), err == nil)
	return err
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
