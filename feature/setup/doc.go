// Package setup provisions the managed roles, categories and channels of a server.
//
// A run is split in two phases. Partial creates the four staff roles, orders them
// under the bot's own role and adds the roads category. Complementary adds the
// admin, non-RP and RP categories with their six channels. Full runs both.
//
// Every resource is fetched from its stored reference first and created only when
// missing, so running a phase twice creates nothing. When a step fails the phase
// deletes whatever differs from the snapshot taken before it started and returns
// a SetupError; Key maps it to a translation key.
//
// Usage:
//
//	engine := setup.NewEngine(api, store, translator, logger)
//	orch := setup.NewOrchestrator(engine, gate, logger)
//	token, err := orch.Run(ctx, setup.Request{ServerID: id, UserID: user, ChannelID: ch, Mode: setup.ModeFull})
package setup
