// Package platform defines the collaborators the provisioning engine talks to on
// the chat platform: ResourceAPI for roles and channels, and Messenger for the
// interactive confirmation prompt.
//
// Values are plain structs (Role, Channel, Overwrite) and Permissions is a closed
// set of named bit constants combined with Union. Errors for missing resources
// match ErrNotFound through errors.Is.
//
// The REST implementation lives in platform/discord; testify mocks live in
// platform/mocks.
package platform
