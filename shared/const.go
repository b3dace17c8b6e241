package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleUser  = "user"
	RoleAdmin = "admin"

	DatasetTypePi         = "pi"
	DatasetTypeHelium10   = "helium10"
	DatasetTypeAdsLibrary = "adsLibrary"

	ActivityModule      = "module"
	ActivityWorkflow    = "workflow"
	ActivityScenario    = "scenario"
	ActivityAchievement = "achievement"
	ActivityChat        = "chat"

	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"

	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)
