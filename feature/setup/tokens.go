package setup

// Token is an opaque translation key describing a successful outcome.
type Token string

const (
	// TokenPhaseSuccess is returned by each setup phase.
	TokenPhaseSuccess  Token = "setup__setup_success_message"
	TokenServerSuccess Token = "setup_server__success"
	TokenCancelled     Token = "setup_server__cancelled"
	TokenFailed        Token = "setup_server__failed"
)

// Translation keys for resource names and the confirmation prompt.
const (
	keyAdminRoleName         = "admin_role_name"
	keyModeratorRoleName     = "moderator_role_name"
	keySpectatorRoleName     = "spectator_role_name"
	keyPlayerRoleName        = "player_role_name"
	keyRoadCategoryName      = "road_channel_name"
	keyAdminCategoryName     = "admin_category_name"
	keyNonRPCategoryName     = "nrp_category_name"
	keyRPCategoryName        = "rp_category_name"
	keyLogChannelName        = "log_channel_name"
	keyCommandsChannelName   = "commands_channel_name"
	keyModerationChannelName = "moderation_channel_name"
	keyGeneralChannelName    = "nrp_general_channel_name"
	keyCharacterChannelName  = "rp_character_channel_name"
	keyWikiChannelName       = "rp_wiki_channel_name"

	keyConfirmMessage = "setup__continue_setup_message"
	keyCancelLabel    = "cancel_setup"
	keyContinueLabel  = "continue_setup"
)
