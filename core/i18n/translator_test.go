package i18n

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"rpbot/core/storage/mocks"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func newTranslator(client *mocks.Client, ttl int) *Translator {
	return New(client, "rpbot", Config{Prefix: "translations", DefaultLocale: "en", CacheTTLSeconds: ttl}, zap.NewNop())
}

func TestTranslate(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "rpbot", "translations/fr.json", mock.Anything).
		Return(body(`{"setup_server__success":"Serveur configuré"}`), nil)
	client.On("GetObject", mock.Anything, "rpbot", "translations/en.json", mock.Anything).
		Return(body(`{"setup_server__success":"Server set up","admin_role_name":"Admin"}`), nil)
	client.On("GetObject", mock.Anything, "rpbot", "translations/de.json", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

	tr := newTranslator(client, 60)

	assert.Equal(t, "Serveur configuré", tr.Translate(ctx, "fr", "setup_server__success"))
	assert.Equal(t, "Admin", tr.Translate(ctx, "fr", "admin_role_name"))
	assert.Equal(t, "Admin", tr.Translate(ctx, "de", "admin_role_name"))
	assert.Equal(t, "unknown_key", tr.Translate(ctx, "", "unknown_key"))

	// Cached after the first load
	client.AssertNumberOfCalls(t, "GetObject", 3)
}

func TestTranslate_StorageDown(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "rpbot", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	tr := newTranslator(client, 60)
	assert.Equal(t, "setup__server_not_found", tr.Translate(context.Background(), "en", "setup__server_not_found"))

	_, err := tr.Catalog(context.Background(), "en")
	assert.ErrorContains(t, err, "connection refused")
}

func TestCatalog_Singleflight(t *testing.T) {
	client := new(mocks.Client)
	release := make(chan time.Time)
	client.On("GetObject", mock.Anything, "rpbot", "translations/en.json", mock.Anything).
		WaitUntil(release).
		Return(body(`{"k":"v"}`), nil).Once()

	tr := newTranslator(client, 60)

	var wg sync.WaitGroup
	results := make([]Catalog, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = tr.Catalog(context.Background(), "en")
		}(i)
	}
	close(release)
	wg.Wait()

	for _, c := range results {
		assert.Equal(t, "v", c["k"])
	}
	client.AssertNumberOfCalls(t, "GetObject", 1)
}

func TestCatalog_NoCache(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "rpbot", "translations/en.json", mock.Anything).Return(body(`{}`), nil).Once()
	client.On("GetObject", mock.Anything, "rpbot", "translations/en.json", mock.Anything).Return(body(`{"k":"v2"}`), nil).Once()

	tr := newTranslator(client, 0)
	first, err := tr.Catalog(context.Background(), "en")
	require.NoError(t, err)
	assert.Empty(t, first)

	second, err := tr.Catalog(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, "v2", second["k"])
}

func TestPublish(t *testing.T) {
	client := new(mocks.Client)
	var uploaded Catalog
	client.On("PutObject", mock.Anything, "rpbot", "translations/en.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, _ := io.ReadAll(args.Get(3).(io.Reader))
			_ = json.Unmarshal(data, &uploaded)
		}).
		Return(minio.UploadInfo{}, nil)

	tr := newTranslator(client, 60)
	tr.catalogs["en"] = &cachedCatalog{catalog: Catalog{"old": "x"}}

	require.NoError(t, tr.Publish(context.Background(), "en", Catalog{"k": "v"}))
	assert.Equal(t, Catalog{"k": "v"}, uploaded)
	_, cached := tr.catalogs["en"]
	assert.False(t, cached)
}

func TestLocales(t *testing.T) {
	client := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 4)
	ch <- minio.ObjectInfo{Key: "translations/fr.json"}
	ch <- minio.ObjectInfo{Key: "translations/en.json"}
	ch <- minio.ObjectInfo{Key: "translations/readme.txt"}
	ch <- minio.ObjectInfo{Key: "translations/old/en.json"}
	close(ch)
	client.On("ListObjects", mock.Anything, "rpbot", minio.ListObjectsOptions{Prefix: "translations/"}).Return((<-chan minio.ObjectInfo)(ch))

	tr := newTranslator(client, 60)
	locales, err := tr.Locales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, locales)
}
