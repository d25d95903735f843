package constants

import "time"

const (
	DefaultHTTPTimeout = 15 * time.Second
)

const (
	KafkaBatchTimeout = 10 * time.Millisecond
	KafkaWriteTimeout = 10 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultMongoDBName  = "casemail"
	RunReportCollection = "ingestion_runs"
)

const (
	HTTPStatusOKMin = 200
	HTTPStatusOKMax = 300
)

// AutoSubmittedValue marks outbound auto-replies so downstream
// auto-responders do not answer them (RFC 3834).
const AutoSubmittedValue = "auto-generated"

const (
	MetadataKeyClassificationCategory = "classification.category"
	MetadataKeyClassificationType     = "classification.type"
	MetadataKeyLabels                 = "labels"
	LabelSeparator                    = ";"
)

const (
	DefaultErrandPriority = "MEDIUM"
)
