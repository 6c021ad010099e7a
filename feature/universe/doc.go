// Package universe manages universes, the groups of servers sharing one
// role-play world.
//
// A creator owns a limited number of universes and each universe links a
// limited number of servers. Linking inserts an empty provisioning record that
// the setup feature fills in. Deleting a universe removes every resource the
// setup created on its servers before dropping the records.
package universe
