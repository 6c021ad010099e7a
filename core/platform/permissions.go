package platform

// Permissions is a set of platform permission bits.
type Permissions uint64

const (
	CreateInstantInvite    Permissions = 1 << 0
	KickMembers            Permissions = 1 << 1
	BanMembers             Permissions = 1 << 2
	Administrator          Permissions = 1 << 3
	ManageChannels         Permissions = 1 << 4
	ManageGuild            Permissions = 1 << 5
	AddReactions           Permissions = 1 << 6
	ViewAuditLog           Permissions = 1 << 7
	PrioritySpeaker        Permissions = 1 << 8
	Stream                 Permissions = 1 << 9
	ViewChannel            Permissions = 1 << 10
	SendMessages           Permissions = 1 << 11
	SendTTSMessages        Permissions = 1 << 12
	ManageMessages         Permissions = 1 << 13
	EmbedLinks             Permissions = 1 << 14
	AttachFiles            Permissions = 1 << 15
	ReadMessageHistory     Permissions = 1 << 16
	MentionEveryone        Permissions = 1 << 17
	UseExternalEmojis      Permissions = 1 << 18
	Connect                Permissions = 1 << 20
	Speak                  Permissions = 1 << 21
	MuteMembers            Permissions = 1 << 22
	DeafenMembers          Permissions = 1 << 23
	MoveMembers            Permissions = 1 << 24
	UseVAD                 Permissions = 1 << 25
	ChangeNickname         Permissions = 1 << 26
	ManageNicknames        Permissions = 1 << 27
	ManageRoles            Permissions = 1 << 28
	UseApplicationCommands Permissions = 1 << 31
	ManageEvents           Permissions = 1 << 33
	ManageThreads          Permissions = 1 << 34
	CreatePublicThreads    Permissions = 1 << 35
	SendMessagesInThreads  Permissions = 1 << 38
	UseEmbeddedActivities  Permissions = 1 << 39
	ModerateMembers        Permissions = 1 << 40
	UseSoundboard          Permissions = 1 << 42
	CreateEvents           Permissions = 1 << 44
	SendPolls              Permissions = 1 << 49
)

// PresetGeneral is the permission set of an ordinary member.
const PresetGeneral = AddReactions | AttachFiles | ChangeNickname | Connect | CreateInstantInvite |
	EmbedLinks | MentionEveryone | ReadMessageHistory | UseVAD | SendMessages | SendTTSMessages |
	Speak | UseExternalEmojis | ViewChannel | UseApplicationCommands

// Union combines permission sets.
func Union(sets ...Permissions) Permissions {
	var p Permissions
	for _, s := range sets {
		p |= s
	}
	return p
}

// Has reports whether every bit of other is set.
func (p Permissions) Has(other Permissions) bool {
	return p&other == other
}

// MemberAccess is what a holder of a location role may do in its channels.
const MemberAccess = ViewChannel | SendMessages | ReadMessageHistory

// RestrictedTo hides a channel from everyone except holders of roleID.
func RestrictedTo(roleID, everyoneID uint64) []Overwrite {
	return []Overwrite{
		{ID: roleID, Type: OverwriteRole, Allow: MemberAccess},
		{ID: everyoneID, Type: OverwriteRole, Deny: ViewChannel},
	}
}
