package platform

// ChannelType is the platform's channel kind.
type ChannelType int

const (
	ChannelText     ChannelType = 0
	ChannelCategory ChannelType = 4
	ChannelForum    ChannelType = 15
)

// OverwriteType says whether an overwrite targets a role or a member.
type OverwriteType int

const (
	OverwriteRole   OverwriteType = 0
	OverwriteMember OverwriteType = 1
)

// Role is a live role of a server.
type Role struct {
	ID          uint64
	Name        string
	Position    int
	Permissions Permissions
	// Managed roles belong to integrations and cannot be moved freely.
	Managed bool
}

// Overwrite grants or denies permissions to a role on a channel.
type Overwrite struct {
	ID    uint64
	Type  OverwriteType
	Allow Permissions
	Deny  Permissions
}

// Channel is a live channel or category of a server.
type Channel struct {
	ID         uint64
	Name       string
	Type       ChannelType
	Position   int
	ParentID   uint64
	Overwrites []Overwrite
}

// RoleSpec describes a role to create.
type RoleSpec struct {
	Name        string
	Permissions Permissions
}

// ChannelSpec describes a channel to create. ParentID is ignored for categories.
type ChannelSpec struct {
	Name       string
	Type       ChannelType
	Position   int
	Overwrites []Overwrite
	ParentID   uint64
}

// Position assigns an explicit position to a role or channel.
type Position struct {
	ID       uint64
	Position int
}

// ButtonStyle is the visual style of a prompt button.
type ButtonStyle int

const (
	ButtonPrimary   ButtonStyle = 1
	ButtonSecondary ButtonStyle = 2
	ButtonSuccess   ButtonStyle = 3
	ButtonDanger    ButtonStyle = 4
)

// Button is one choice of an interactive prompt.
type Button struct {
	CustomID string
	Label    string
	Style    ButtonStyle
}
