// Package i18n resolves translation keys produced by the setup engine into text.
//
// Catalogs are flat JSON objects stored as <prefix>/<locale>.json in the object
// storage bucket. A catalog is loaded once per TTL; concurrent misses share a
// single load through singleflight. Lookups fall back from the requested locale
// to the default locale and finally to the key itself, so a storage outage
// degrades to raw keys instead of failing a setup.
//
// # Usage
//
//	tr := i18n.New(client, cfg.Storage.Bucket, cfg.I18n, logger)
//	title := tr.Translate(ctx, "fr", "setup_server__success")
package i18n
