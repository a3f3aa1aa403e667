package cmd

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/deepwork/internal"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	inspectFormat     string
	inspectSampleRows int
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [database-path]",
	Short: "Inspect the stats database",
	Long: `Inspect the stats database without modifying it.

Shows every table with its schema and row count, the raw key/value rows and
how the persisted stats snapshot decodes, including entries that would be
skipped on load.

Examples:
  deepwork inspect                        # Inspect the configured database
  deepwork inspect /path/to/deepwork.db   # Inspect a specific file
  deepwork inspect --format json          # Machine-readable output`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settings.Database
		if len(args) > 0 {
			path = args[0]
		}

		report, err := inspectDatabase(path, inspectSampleRows)
		if err != nil {
			return err
		}

		switch inspectFormat {
		case "json":
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(report)
		case "text":
			printInspection(cmd.OutOrStdout(), report)
			return nil
		default:
			return fmt.Errorf("unsupported format: %s (supported: text, json)", inspectFormat)
		}
	},
}

// ColumnInfo describes one table column
type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"not_null"`
	PrimaryKey bool   `json:"primary_key"`
}

// TableInfo describes one table
type TableInfo struct {
	Name    string       `json:"name"`
	Rows    int          `json:"rows"`
	Columns []ColumnInfo `json:"columns"`
}

// SnapshotInfo is how the stats key decodes
type SnapshotInfo struct {
	Present bool     `json:"present"`
	Records int      `json:"records"`
	Skipped []string `json:"skipped,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Inspection is the full inspect output
type Inspection struct {
	Database string                  `json:"database"`
	Tables   []TableInfo             `json:"tables"`
	Rows     []internal.KeyValuePair `json:"rows"`
	Snapshot SnapshotInfo            `json:"snapshot"`
}

func inspectDatabase(dbPath string, sampleRows int) (*Inspection, error) {
	db, err := internal.OpenDatabaseReadOnly(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }()

	report := &Inspection{Database: dbPath}

	tables, err := getTables(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	hasKV := false
	for _, name := range tables {
		info := TableInfo{Name: name}
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %q", name)).Scan(&info.Rows); err != nil {
			internal.LogWarn("Failed to count rows in %s: %v", name, err)
		}
		info.Columns, err = getTableSchema(db, name)
		if err != nil {
			internal.LogWarn("Failed to read schema of %s: %v", name, err)
		}
		report.Tables = append(report.Tables, info)
		if name == internal.KVTable {
			hasKV = true
		}
	}
	if !hasKV {
		return report, nil
	}

	pairs, err := internal.QueryKV(db, "%")
	if err != nil {
		return nil, err
	}
	for i, pair := range pairs {
		if sampleRows >= 0 && i >= sampleRows {
			break
		}
		report.Rows = append(report.Rows, pair)
	}

	for _, pair := range pairs {
		if pair.Key != internal.StatsKey {
			continue
		}
		report.Snapshot.Present = true
		records, skipped, err := internal.DecodeSnapshot(pair.Value)
		if err != nil {
			report.Snapshot.Error = err.Error()
			break
		}
		report.Snapshot.Records = len(records)
		for _, s := range skipped {
			report.Snapshot.Skipped = append(report.Snapshot.Skipped, s.Error())
		}
	}
	return report, nil
}

func getTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func getTableSchema(db *sql.DB, tableName string) ([]ColumnInfo, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%q)", tableName))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var columns []ColumnInfo
	for rows.Next() {
		var col ColumnInfo
		var cid int
		var notNull, pk int
		var defaultValue sql.NullString

		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &defaultValue, &pk); err != nil {
			continue
		}
		col.NotNull = notNull == 1
		col.PrimaryKey = pk == 1
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func printInspection(w io.Writer, report *Inspection) {
	_, _ = fmt.Fprintf(w, "Database: %s\n", report.Database)
	_, _ = fmt.Fprintf(w, "Found %d table(s)\n\n", len(report.Tables))

	for _, table := range report.Tables {
		_, _ = fmt.Fprintf(w, "Table: %s (%d rows)\n", table.Name, table.Rows)
		for _, col := range table.Columns {
			pk := ""
			if col.PrimaryKey {
				pk = " [PRIMARY KEY]"
			}
			notNull := ""
			if col.NotNull {
				notNull = " NOT NULL"
			}
			_, _ = fmt.Fprintf(w, "  • %s: %s%s%s\n", col.Name, col.Type, notNull, pk)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(report.Rows) > 0 {
		_, _ = fmt.Fprintln(w, "Rows:")
		for _, pair := range report.Rows {
			value := pair.Value
			// Truncate long values
			if len(value) > 200 {
				value = value[:200] + "..."
			}
			if strings.Contains(value, "\n") {
				value = strings.Split(value, "\n")[0] + "..."
			}
			_, _ = fmt.Fprintf(w, "  %s = %s\n", pair.Key, value)
		}
		_, _ = fmt.Fprintln(w)
	}

	snapshot := report.Snapshot
	switch {
	case !snapshot.Present:
		_, _ = fmt.Fprintf(w, "Snapshot %s: not stored\n", internal.StatsKey)
	case snapshot.Error != "":
		_, _ = fmt.Fprintf(w, "Snapshot %s: unreadable, loads as empty (%s)\n", internal.StatsKey, snapshot.Error)
	default:
		_, _ = fmt.Fprintf(w, "Snapshot %s: %d record(s), %d skipped\n", internal.StatsKey, snapshot.Records, len(snapshot.Skipped))
		for _, reason := range snapshot.Skipped {
			_, _ = fmt.Fprintf(w, "  ⚠ %s\n", reason)
		}
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "Output format (text, json)")
	inspectCmd.Flags().IntVar(&inspectSampleRows, "sample", 10, "Number of key/value rows to show (-1 for all)")
}
