package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"storefront/bot/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Report summarizes one catalog load for startup logging.
type Report struct {
	Categories   int
	Products     int
	SkippedFiles int
}

const defaultDescription = "Нет описания."

// Load reads the categories record and walks the products tree. Load never
// fails: a missing categories file yields an empty category set, an
// unparseable product file is skipped, and every degradation is logged
// per-file so a single bad record cannot take the catalog down.
func Load(categoriesPath, productsDir string) (*Index, Report) {
	categories := loadCategories(categoriesPath)
	products, skipped := loadProducts(productsDir)

	idx := NewIndex(categories, products)
	logSummary(idx)

	return idx, Report{
		Categories:   idx.CategoryCount(),
		Products:     idx.ProductCount(),
		SkippedFiles: skipped,
	}
}

func loadCategories(path string) []domain.Category {
	f, err := os.Open(path)
	if err != nil {
		log.Errorf("❌ Categories file %q not found: %v", path, err)
		return nil
	}
	defer f.Close()

	categories, err := decodeOrderedCategories(f)
	if err != nil {
		log.Errorf("❌ Error loading categories from %q: %v", path, err)
		return nil
	}
	return categories
}

// decodeOrderedCategories decodes a {"key": "display name"} object preserving
// the key order of the source file, which defines the menu order.
func decodeOrderedCategories(r io.Reader) ([]domain.Category, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var out []domain.Category
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := keyTok.(string)

		var name string
		if err := dec.Decode(&name); err != nil {
			return nil, fmt.Errorf("category %q: %w", key, err)
		}
		out = append(out, domain.Category{Key: key, Name: name})
	}
	return out, nil
}

// productRecord is the on-disk shape of one product file. Price tolerates
// both "10" and 10 in source data.
type productRecord struct {
	Name        string     `json:"name"`
	Price       flexString `json:"price"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Photos      []string   `json:"photos"`
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func loadProducts(dir string) ([]domain.Product, int) {
	if _, err := os.Stat(dir); err != nil {
		log.Errorf("❌ Products folder %q not found: %v", dir, err)
		return nil, 0
	}

	var products []domain.Product
	seen := make(map[string]string) // id -> source path, for duplicate diagnostics
	skipped := 0

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Errorf("❌ Error walking %q: %v", path, err)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Errorf("❌ Error in %q: %v", path, err)
			skipped++
			return nil
		}

		var rec productRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			log.Errorf("❌ Error in %q: %v", path, err)
			skipped++
			return nil
		}

		id := strings.TrimSuffix(d.Name(), ".json")
		if prev, dup := seen[id]; dup {
			log.Warnf("⚠️ Duplicate product id %q: %q overrides %q", id, path, prev)
		}
		seen[id] = path

		description := rec.Description
		if description == "" {
			description = defaultDescription
		}

		products = append(products, domain.Product{
			ID:          id,
			Name:        rec.Name,
			Price:       string(rec.Price),
			Category:    rec.Category,
			Description: SanitizeMarkup(description),
			Photos:      rec.Photos,
		})
		return nil
	})
	if err != nil {
		log.Errorf("❌ Error walking products folder %q: %v", dir, err)
	}

	return products, skipped
}

func logSummary(idx *Index) {
	log.Infof("📂 Всего [%d] категорий и [%d] товаров загружено:", idx.CategoryCount(), idx.ProductCount())
	for _, cat := range idx.Categories() {
		products := idx.ProductsByCategory(cat.Key)
		if len(products) == 0 {
			log.Infof(" └─ [%s]", cat.Key)
			continue
		}
		log.Infof(" └─ [%s]  %d товар(ов)", cat.Key, len(products))
		for _, p := range products {
			log.Infof("     └─ %s", p.DisplayName)
		}
	}
}
