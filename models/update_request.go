package models

// UpdateRequest tracks the pair of messages posted for a single game update
// request. Entries live only in memory for the lifetime of the process; a
// restart orphans any pending request messages.
type UpdateRequest struct {
	ID              string // UUID assigned at submission
	GuildID         int64
	LogChannelID    int64
	LogMessageID    int64
	StatusChannelID int64
	StatusMessageID int64
}

// RequestSubmission holds the fields a member enters in the update request
// modal, plus who submitted it.
type RequestSubmission struct {
	GameName    string
	Store       string
	Server      string
	Size        string
	RequesterID int64
}

// Principal is the acting identity on an interaction, as resolved from the
// guild member by the bot layer.
type Principal struct {
	UserID          int64
	IsAdministrator bool
	RoleIDs         []int64
}
