package types

// ArtifactKind discriminates the Artifact union.
type ArtifactKind string

// Artifact kinds.
const (
	ArtifactResult       ArtifactKind = "result"
	ArtifactDownloadLink ArtifactKind = "download_link"
)

// ResultRecord is one analysed recall record.
type ResultRecord struct {
	ProductID    string `json:"product_id"`
	Reason       string `json:"reason"`
	HealthRisk   string `json:"health_risk"`
	RiskAnalysis string `json:"risk_analysis"`
}

// DownloadLink points at an export generated by the backend.
type DownloadLink struct {
	URL string `json:"url"`
}

// Artifact is one entry in a session's ordered result list.
// Exactly one of Result or Link is set, matching Kind.
type Artifact struct {
	Kind   ArtifactKind  `json:"kind"`
	Result *ResultRecord `json:"result,omitempty"`
	Link   *DownloadLink `json:"link,omitempty"`
}
