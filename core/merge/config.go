package merge

// Config holds merge output settings.
type Config struct {
	// OutputDir is the merged-output root. Files mirror their relative path under it.
	OutputDir string `mapstructure:"output_dir" default:"./merged"`
	// Publish uploads every merged file to object storage after writing it.
	Publish bool `mapstructure:"publish" default:"false"`
	// PublishPrefix is the object key prefix for published files.
	PublishPrefix string `mapstructure:"publish_prefix" default:"merged"`
	// RecordAudit stores reports in the database when one is configured.
	RecordAudit bool `mapstructure:"record_audit" default:"true"`
	// LogDecisions logs every audit record in addition to keeping it in the report.
	LogDecisions bool `mapstructure:"log_decisions" default:"false"`
}
