package output

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
	"go.uber.org/zap"

	"tres-rdc/internal/logging"
	"tres-rdc/internal/rdc"
)

const (
	// DefaultGreptimeTable receives the rows when no table is configured.
	DefaultGreptimeTable = "tres_rdc"
	defaultGreptimePort  = 4001
	greptimeBatchSize    = 1000
)

type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes the table to GreptimeDB. Every row is tagged with
// run_id and system_id; the ingester snake-cases column names, so TimeMyr
// lands in time_myr and BinaryOmega in binary_omega. The time index is the run start plus the record
// index in milliseconds, so records keep their history order.
type GreptimeDBWriter struct {
	client greptimeClient
	table  string
	runID  string
	start  time.Time
}

// NewGreptimeDBWriter connects to endpoint ("host" or "host:port").
func NewGreptimeDBWriter(endpoint, database, tableName, runID string, start time.Time) (*GreptimeDBWriter, error) {
	host, port, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("greptimedb client: %w", err)
	}
	if tableName == "" {
		tableName = DefaultGreptimeTable
	}
	return &GreptimeDBWriter{client: client, table: tableName, runID: runID, start: start}, nil
}

func splitEndpoint(endpoint string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		// no port given
		return endpoint, defaultGreptimePort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid greptimedb endpoint %q: %w", endpoint, err)
	}
	return host, port, nil
}

func (w *GreptimeDBWriter) String() string { return "greptimedb:" + w.table }

// WriteTable inserts all records, batched.
func (w *GreptimeDBWriter) WriteTable(ctx context.Context, t *rdc.Table) error {
	log := logging.FromContext(ctx)
	for lo := 0; lo < len(t.Records); lo += greptimeBatchSize {
		hi := min(lo+greptimeBatchSize, len(t.Records))
		tbl, err := w.batch(t, lo, hi)
		if err != nil {
			return err
		}
		if _, err := w.client.Write(ctx, tbl); err != nil {
			log.Error("greptimedb write failed", zap.String("table", w.table), zap.Error(err))
			return fmt.Errorf("greptimedb write: %w", err)
		}
		log.Debug("greptimedb batch written", zap.Int("rows", hi-lo))
	}
	log.Info("table written", zap.String("sink", w.String()), zap.Int("rows", t.Len()), zap.String("run_id", w.runID))
	return nil
}

func (w *GreptimeDBWriter) batch(t *rdc.Table, lo, hi int) (*table.Table, error) {
	tbl, err := table.New(w.table)
	if err != nil {
		return nil, err
	}
	if err := tbl.AddTagColumn("run_id", types.STRING); err != nil {
		return nil, err
	}
	var fields []string
	for _, col := range t.Columns {
		if col == rdc.ColSystemID {
			if err := tbl.AddTagColumn(col, types.INT64); err != nil {
				return nil, err
			}
			continue
		}
		typ := types.FLOAT64
		if rdc.ColumnKind(col) == rdc.KindInt {
			typ = types.INT64
		}
		if err := tbl.AddFieldColumn(col, typ); err != nil {
			return nil, err
		}
		fields = append(fields, col)
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return nil, err
	}

	hasSystemID := len(fields) < len(t.Columns)
	for i := lo; i < hi; i++ {
		rec := t.Records[i]
		row := make([]any, 0, len(t.Columns)+2)
		row = append(row, w.runID)
		if hasSystemID {
			v, _ := rec.Get(rdc.ColSystemID)
			row = append(row, v)
		}
		for _, col := range fields {
			v, _ := rec.Get(col)
			row = append(row, v)
		}
		row = append(row, w.start.Add(time.Duration(i)*time.Millisecond))
		if err := tbl.AddRow(row...); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return tbl, nil
}
