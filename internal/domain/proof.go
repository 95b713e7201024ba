package domain

// StoredContent is the result of pinning a blob to the content store.
type StoredContent struct {
	CID string `json:"cid"`
	URL string `json:"url"`
}

// ProofRecord is the payload submitted to the ledger topic.
type ProofRecord struct {
	CID          string `json:"cid"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	Timestamp    int64  `json:"timestamp"`
	ProofHash    string `json:"proofHash"`
	Action       string `json:"action"`
}

// LedgerReceipt identifies where a proof record landed on the ledger.
type LedgerReceipt struct {
	TopicID        string `json:"topicId"`
	SequenceNumber uint64 `json:"sequenceNumber"`
}

// Classification is the vision analysis outcome for an uploaded image.
// A failed or unconfigured analysis yields Success=false with zeroed
// scores; it never propagates as an error.
type Classification struct {
	Success            bool     `json:"success"`
	Confidence         float64  `json:"confidence"`
	EnvironmentalScore float64  `json:"environmentalScore"`
	SafetyScore        float64  `json:"safetyScore"`
	DetectedObjects    []string `json:"detectedObjects"`
	Labels             []string `json:"labels"`
	TextContent        []string `json:"textContent"`
	Error              string   `json:"error,omitempty"`
}
