package setup

import "rpbot/core/platform"

var (
	adminRolePermissions = platform.Administrator

	moderatorRolePermissions = platform.Union(
		platform.PresetGeneral,
		platform.ViewChannel,
		platform.KickMembers,
		platform.BanMembers,
		platform.ManageChannels,
		platform.Stream,
		platform.ManageMessages,
		platform.MuteMembers,
		platform.DeafenMembers,
		platform.MoveMembers,
		platform.ManageNicknames,
		platform.ManageRoles,
		platform.ManageEvents,
		platform.ManageThreads,
		platform.CreatePublicThreads,
		platform.SendMessagesInThreads,
		platform.UseEmbeddedActivities,
		platform.ModerateMembers,
		platform.UseSoundboard,
		platform.CreateEvents,
		platform.SendPolls,
	)

	spectatorRolePermissions = platform.PresetGeneral
	playerRolePermissions    = platform.PresetGeneral
)

func denyView(roleID uint64) platform.Overwrite {
	return platform.Overwrite{ID: roleID, Type: platform.OverwriteRole, Deny: platform.ViewChannel}
}

func allowView(roleID uint64) platform.Overwrite {
	return platform.Overwrite{ID: roleID, Type: platform.OverwriteRole, Allow: platform.ViewChannel}
}

// roadOverwrites hides roads from players and everyone; spectators and moderators see them.
func roadOverwrites(everyone, player, spectator, moderator uint64) []platform.Overwrite {
	return []platform.Overwrite{
		denyView(player),
		denyView(everyone),
		allowView(spectator),
		allowView(moderator),
	}
}

// adminOverwrites restricts the admin category to moderators.
func adminOverwrites(everyone, spectator, player, moderator uint64) []platform.Overwrite {
	return []platform.Overwrite{
		denyView(everyone),
		denyView(spectator),
		denyView(player),
		allowView(moderator),
	}
}

func characterOverwrites(player uint64) []platform.Overwrite {
	return []platform.Overwrite{denyView(player)}
}
