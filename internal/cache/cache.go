package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Injecter en klokke (for testbarhet)
var Now = time.Now

type entry struct {
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Cache er en filbasert nøkkel/verdi-lagring for JSON-svar med utløpstid.
// Hver nøkkel lagres i sin egen fil, navngitt etter SHA-256 av nøkkelen,
// så filnavnene avslører ikke hva som ble spurt etter.
type Cache struct {
	dir string
	ttl time.Duration
}

func New(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("kunne ikke opprette cache-katalog %s: %w", dir, err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

func (c *Cache) Dir() string {
	return c.dir
}

func Digest(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, Digest(key)+".json")
}

// Get returnerer lagret verdi for key. Utløpte og ødelagte oppføringer
// slettes og behandles som bom.
func (c *Cache) Get(key string) (json.RawMessage, bool) {
	p := c.path(key)

	raw, err := os.ReadFile(p)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Debug("Kunne ikke lese cache-fil", "fil", p, "error", err)
		}
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil || e.Timestamp.IsZero() {
		slog.Debug("Ødelagt cache-oppføring – fjerner", "fil", p)
		c.remove(p)
		return nil, false
	}

	if Now().Sub(e.Timestamp) > c.ttl {
		c.remove(p)
		return nil, false
	}

	if len(e.Data) == 0 {
		return json.RawMessage("null"), true
	}
	return e.Data, true
}

// Set skriver value under key. Eksisterende oppføring overskrives.
func (c *Cache) Set(key string, value json.RawMessage) error {
	if len(value) == 0 {
		value = json.RawMessage("null")
	}

	out, err := json.Marshal(entry{Timestamp: Now().UTC(), Data: value})
	if err != nil {
		return fmt.Errorf("kunne ikke serialisere cache-oppføring: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("kunne ikke opprette midlertidig cache-fil: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("kunne ikke skrive cache-fil: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("kunne ikke lukke cache-fil: %w", err)
	}

	if err := os.Rename(tmpName, c.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("kunne ikke flytte cache-fil på plass: %w", err)
	}
	return nil
}

// Clear sletter alle oppføringer i cache-katalogen.
func (c *Cache) Clear() error {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("kunne ikke lese cache-katalog %s: %w", c.dir, err)
	}

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, f.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("kunne ikke slette %s: %w", f.Name(), err)
		}
	}
	return nil
}

func (c *Cache) remove(p string) {
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Klarte ikke å slette cache-fil", "fil", p, "error", err)
	}
}
