package constants

const (
	// Date Layouts
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"

	// Card Numbers
	CardPrefix      = "XF"
	CardDigits      = 6
	MaxCardAttempts = 1000

	// Transaction History
	MaxHistoryRecords  = 100
	DefaultRecordCount = 10
	MaxRecordCount     = 20
)
