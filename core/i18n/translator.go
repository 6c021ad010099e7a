package i18n

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"rpbot/core/storage"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Catalog maps translation keys to localized text.
type Catalog map[string]string

type cachedCatalog struct {
	catalog Catalog
	built   time.Time
	ttl     time.Duration
}

func (c *cachedCatalog) isExpired() bool {
	if c.ttl == 0 {
		return true
	}
	return time.Since(c.built) > c.ttl
}

// Translator resolves keys against per-locale catalogs stored as JSON objects.
type Translator struct {
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger

	mu       sync.RWMutex
	catalogs map[string]*cachedCatalog
	sf       singleflight.Group
}

// New creates a translator reading catalogs from bucket.
func New(client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Translator {
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}
	return &Translator{
		client:   client,
		bucket:   bucket,
		cfg:      cfg,
		logger:   logger,
		catalogs: make(map[string]*cachedCatalog),
	}
}

func (t *Translator) objectName(locale string) string {
	return path.Join(t.cfg.Prefix, locale+".json")
}

// Catalog returns the catalog for locale, loading it at most once per TTL
// even under concurrent callers. A missing catalog is an empty one.
func (t *Translator) Catalog(ctx context.Context, locale string) (Catalog, error) {
	t.mu.RLock()
	cached, ok := t.catalogs[locale]
	t.mu.RUnlock()
	if ok && !cached.isExpired() {
		return cached.catalog, nil
	}

	result, err, _ := t.sf.Do(locale, func() (interface{}, error) {
		t.mu.RLock()
		cached, ok := t.catalogs[locale]
		t.mu.RUnlock()
		if ok && !cached.isExpired() {
			return cached.catalog, nil
		}

		catalog, err := t.load(ctx, locale)
		if err != nil {
			return nil, err
		}

		t.mu.Lock()
		t.catalogs[locale] = &cachedCatalog{
			catalog: catalog,
			built:   time.Now(),
			ttl:     time.Duration(t.cfg.CacheTTLSeconds) * time.Second,
		}
		t.mu.Unlock()
		return catalog, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(Catalog), nil
}

func (t *Translator) load(ctx context.Context, locale string) (Catalog, error) {
	obj, err := t.client.GetObject(ctx, t.bucket, t.objectName(locale), minio.GetObjectOptions{})
	if err != nil {
		return t.missing(locale, err)
	}
	defer obj.Close()

	catalog := Catalog{}
	if err := json.NewDecoder(obj).Decode(&catalog); err != nil {
		// minio reports a missing key on first read, not on GetObject
		if resp := minio.ToErrorResponse(err); resp.Code != "" {
			return t.missing(locale, err)
		}
		return nil, fmt.Errorf("failed to decode catalog %s: %w", locale, err)
	}
	return catalog, nil
}

func (t *Translator) missing(locale string, err error) (Catalog, error) {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		t.logger.Debug("Catalog not found", zap.String("locale", locale))
		return Catalog{}, nil
	}
	return nil, fmt.Errorf("failed to load catalog %s: %w", locale, err)
}

// Translate resolves key for locale, then for the default locale, then returns
// the key itself. Storage failures are logged, never returned.
func (t *Translator) Translate(ctx context.Context, locale, key string) string {
	for _, loc := range t.chain(locale) {
		catalog, err := t.Catalog(ctx, loc)
		if err != nil {
			t.logger.Warn("Catalog unavailable", zap.String("locale", loc), zap.Error(err))
			continue
		}
		if text, ok := catalog[key]; ok && text != "" {
			return text
		}
	}
	return key
}

func (t *Translator) chain(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" || locale == t.cfg.DefaultLocale {
		return []string{t.cfg.DefaultLocale}
	}
	return []string{locale, t.cfg.DefaultLocale}
}

// Publish uploads catalog for locale and drops the cached copy.
func (t *Translator) Publish(ctx context.Context, locale string, catalog Catalog) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog %s: %w", locale, err)
	}
	_, err = t.client.PutObject(ctx, t.bucket, t.objectName(locale), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload catalog %s: %w", locale, err)
	}
	t.Invalidate(locale)
	return nil
}

// Locales lists the locales with a catalog in storage, sorted.
func (t *Translator) Locales(ctx context.Context) ([]string, error) {
	prefix := strings.TrimSuffix(t.cfg.Prefix, "/") + "/"
	var locales []string
	for obj := range t.client.ListObjects(ctx, t.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list catalogs: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if strings.HasSuffix(name, ".json") && !strings.Contains(name, "/") {
			locales = append(locales, strings.TrimSuffix(name, ".json"))
		}
	}
	sort.Strings(locales)
	return locales, nil
}

// Invalidate drops the cached catalog of locale.
func (t *Translator) Invalidate(locale string) {
	t.mu.Lock()
	delete(t.catalogs, locale)
	t.mu.Unlock()
}
