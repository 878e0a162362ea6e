package types

// Values reported by the diagnostic endpoint.
const (
	BackendRunning = "✅ Running"

	DatabaseAvailable        = "✅ Available"
	DatabaseWorking          = "✅ Connected & Working"
	DatabaseConnectedError   = "⚠️ Connected but Error: "
	DatabaseNotInitialized   = "⚠️ Available but not initialized"
	DatabaseModuleNotFound   = "❌ Database module not found"
	DatabaseErrorPrefix      = "❌ Error: "
	DatabaseNotAvailable     = "❌ Not Available"
	EnvSet                   = "✅ Set"
	EnvNotSet                = "❌ Not Set"
	ConnectionConnected      = "Connected"
	ConnectionNotConnected   = "Not Connected"
	MaxDiagnosticCollections = 10
	MaxDiagnosticErrorLength = 50
)

// DiagnosticRecord describes backend and database health for the /test endpoint.
type DiagnosticRecord struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}
