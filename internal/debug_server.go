package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

type InspectRow struct {
	Key    string
	Type   string
	At     string
	Who    string
	Detail string
}

type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// StartDebugServer exposes a read-only HTML view over the raw store, plus the
// live exchange counters. Not part of the public surface; bind it to a port
// that is not reachable from outside.
func StartDebugServer(db *badger.DB, port int, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	mux.HandleFunc("/inspect", func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "msg:"
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapRow(string(item.Key()), val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	go func() {
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}

func mapRow(key string, val []byte) InspectRow {
	switch {
	case strings.HasPrefix(key, "participant:"):
		return participantRow(key, val)
	case strings.HasPrefix(key, "msg:"):
		return messageRow(key, val)
	default:
		return InspectRow{Key: key, Type: "RAW", At: "--:--:--", Who: "--------",
			Detail: fmt.Sprintf("Size: %d bytes", len(val))}
	}
}

func participantRow(key string, val []byte) InspectRow {
	var p struct {
		Name     string    `json:"name"`
		LastSeen time.Time `json:"last_seen"`
	}
	row := InspectRow{Key: key, Type: "PARTICIPANT", At: "--:--:--", Who: "--------", Detail: "-"}
	if err := json.Unmarshal(val, &p); err != nil {
		row.Detail = "unreadable value"
		return row
	}
	row.At = p.LastSeen.Format("15:04:05")
	row.Who = p.Name
	row.Detail = "last seen " + p.LastSeen.Format(time.RFC3339)
	return row
}

func messageRow(key string, val []byte) InspectRow {
	var m struct {
		From string    `json:"from"`
		To   string    `json:"to"`
		Text string    `json:"text"`
		Kind string    `json:"kind"`
		At   time.Time `json:"at"`
	}
	row := InspectRow{Key: key, Type: "MESSAGE", At: "--:--:--", Who: "--------", Detail: "-"}
	if err := json.Unmarshal(val, &m); err != nil {
		row.Detail = "unreadable value"
		return row
	}
	row.Type = strings.ToUpper(m.Kind)
	row.At = m.At.Format("15:04:05")
	row.Who = m.From
	row.Detail = fmt.Sprintf("to %s: %s", m.To, m.Text)
	return row
}
