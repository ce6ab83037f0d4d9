package evaluator

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lux/internal/object"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open connections are tracked per interpreter process and handed to
// scripts as numeric handles.
var (
	dbConnections = map[int64]*sql.DB{}
	dbNextHandle  int64
)

func registerDBNatives(env *object.Environment) {
	env.Define("dbOpen", &object.Native{
		Name:    "dbOpen",
		NumArgs: 2,
		Fn: func(args ...object.Object) object.Object {
			driver, ok := args[0].(*object.String)
			if !ok {
				return nativeError("dbOpen expects a driver name, got %s", object.TypeName(args[0]))
			}
			dsn, ok := args[1].(*object.String)
			if !ok {
				return nativeError("dbOpen expects a connection string, got %s", object.TypeName(args[1]))
			}

			db, err := sql.Open(driver.Value, dsn.Value)
			if err != nil {
				return nativeError("failed to open connection: %v", err)
			}
			if err := db.Ping(); err != nil {
				db.Close()
				return nativeError("failed to ping database: %v", err)
			}

			dbNextHandle++
			dbConnections[dbNextHandle] = db
			return &object.Number{Value: float64(dbNextHandle)}
		},
	})

	env.Define("dbExec", &object.Native{
		Name:    "dbExec",
		NumArgs: 2,
		Fn: func(args ...object.Object) object.Object {
			db, errObj := dbHandle(args[0])
			if errObj != nil {
				return errObj
			}
			query, ok := args[1].(*object.String)
			if !ok {
				return nativeError("dbExec expects a statement string, got %s", object.TypeName(args[1]))
			}

			result, err := db.Exec(query.Value)
			if err != nil {
				return nativeError("exec failed: %v", err)
			}

			affected, _ := result.RowsAffected()
			return &object.Number{Value: float64(affected)}
		},
	})

	env.Define("dbQuery", &object.Native{
		Name:    "dbQuery",
		NumArgs: 2,
		Fn: func(args ...object.Object) object.Object {
			db, errObj := dbHandle(args[0])
			if errObj != nil {
				return errObj
			}
			query, ok := args[1].(*object.String)
			if !ok {
				return nativeError("dbQuery expects a query string, got %s", object.TypeName(args[1]))
			}

			rows, err := db.Query(query.Value)
			if err != nil {
				return nativeError("query failed: %v", err)
			}
			defer rows.Close()

			return renderRows(rows)
		},
	})

	env.Define("dbClose", &object.Native{
		Name:    "dbClose",
		NumArgs: 1,
		Fn: func(args ...object.Object) object.Object {
			handle, ok := args[0].(*object.Number)
			if !ok {
				return nativeError("dbClose expects a connection handle, got %s", object.TypeName(args[0]))
			}
			if db, found := dbConnections[int64(handle.Value)]; found {
				db.Close()
				delete(dbConnections, int64(handle.Value))
			}
			return object.NIL
		},
	})
}

func dbHandle(arg object.Object) (*sql.DB, object.Object) {
	handle, ok := arg.(*object.Number)
	if !ok {
		return nil, nativeError("expected a connection handle, got %s", object.TypeName(arg))
	}
	db, found := dbConnections[int64(handle.Value)]
	if !found {
		return nil, nativeError("invalid connection handle")
	}
	return db, nil
}

// renderRows flattens a result set into one string. Each row is a line of
// "column=value" pairs separated by tabs; scripts have no aggregate types
// to hold anything richer.
func renderRows(rows *sql.Rows) object.Object {
	columns, _ := rows.Columns()

	var out strings.Builder
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nativeError("scan failed: %v", err)
		}

		if out.Len() > 0 {
			out.WriteByte('\n')
		}
		for i, col := range columns {
			if i > 0 {
				out.WriteByte('\t')
			}
			out.WriteString(col)
			out.WriteByte('=')
			out.WriteString(renderValue(values[i]))
		}
	}
	if err := rows.Err(); err != nil {
		return nativeError("query failed: %v", err)
	}

	return &object.String{Value: out.String()}
}

func renderValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []byte:
		return string(x)
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
