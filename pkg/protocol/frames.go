// Package protocol defines the recall search wire protocol: the request frames
// sent on submission and the classification of inbound frames into events.
//
// Inbound discriminants are natural-language strings chosen by the backend and
// are matched verbatim.
package protocol

import (
	"encoding/json"

	"github.com/usestring/recall-stream/pkg/types"
)

// Inbound message discriminants.
const (
	MsgTotalCount = "総検索件数"
	MsgAnalysis   = "分析結果"
	MsgCompletion = "全件の処理が完了しました"
	MsgNoResults  = "条件に該当する回収情報はありませんでした。"
	// MsgDownloadReady accompanies download links. Any non-terminal frame with
	// a string url is a link, whatever its message text.
	MsgDownloadReady = "CSVファイルが生成されました。以下のリンクからダウンロードできます。"
)

// Outbound actions. Both are sent for every submission.
const (
	ActionSearch = "sendMessage"
	ActionPMDA   = "PMDA"
)

// RequestData is the criteria payload shared by both request frames.
type RequestData struct {
	Keyword string `json:"keyword"`
	Period  string `json:"period"`
	Source  string `json:"source"`
	Email   string `json:"email"`
}

// Request is an outbound frame.
type Request struct {
	Action string      `json:"action"`
	Data   RequestData `json:"data"`
}

// NewRequests builds the generic and source-specific request frames for c,
// in send order. Both carry the identical payload and no correlation ID.
func NewRequests(c types.SearchCriteria) []Request {
	data := RequestData{
		Keyword: c.Keyword,
		Period:  c.Period,
		Source:  string(c.Source),
		Email:   c.Email,
	}
	return []Request{
		{Action: ActionSearch, Data: data},
		{Action: ActionPMDA, Data: data},
	}
}

// envelope is the outer shape of every inbound frame.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	URL     json.RawMessage `json:"url"`
}

// AnalysisFields is the payload of an analysis-result frame.
type AnalysisFields struct {
	CompositeKey string `json:"timestamp"` // "<type>#<id>"
	Reason       string `json:"回収理由"`
	HealthRisk   string `json:"危惧される具体的な健康被害"`
	RiskAnalysis string `json:"現象・リスク分析"`
}
