package pages

import (
	"encoding/json"
	"os"
	"path/filepath"

	"storefront/bot/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Store holds the static informational pages, loaded once at startup.
type Store struct {
	texts map[domain.PageKey]string
}

type pageRecord struct {
	Text string `json:"text"`
}

// Load reads one <key>.json record per enumerated page key from dir. A
// missing or unreadable page degrades to an empty body with a diagnostic,
// never an error.
func Load(dir string) *Store {
	s := &Store{texts: make(map[domain.PageKey]string, len(domain.PageKeys))}
	for _, key := range domain.PageKeys {
		s.texts[key] = loadPage(dir, key)
	}
	return s
}

func loadPage(dir string, key domain.PageKey) string {
	path := filepath.Join(dir, string(key)+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("❌ Text file %q not found: %v", path, err)
		return ""
	}

	var rec pageRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Errorf("❌ Error in %q: %v", path, err)
		return ""
	}
	return rec.Text
}

// Get returns the page body, or an empty string for unknown keys.
func (s *Store) Get(key domain.PageKey) string {
	return s.texts[key]
}
