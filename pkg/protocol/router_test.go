package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/recall-stream/pkg/types"
)

const analysisFrame = `{"message":"分析結果","data":{"timestamp":"DRUG#ABC123","回収理由":"異物混入","危惧される具体的な健康被害":"腹痛","現象・リスク分析":"低"}}`

func TestClassify(t *testing.T) {
	r := MustNewRouter()

	tests := []struct {
		name  string
		frame string
		want  Event
	}{
		{
			name:  "total count",
			frame: `{"message":"総検索件数","data":3}`,
			want:  Event{Kind: KindTotalCount, Message: MsgTotalCount, Total: 3},
		},
		{
			name:  "total count zero",
			frame: `{"message":"総検索件数","data":0}`,
			want:  Event{Kind: KindTotalCount, Message: MsgTotalCount, Total: 0},
		},
		{
			name:  "analysis result",
			frame: analysisFrame,
			want: Event{Kind: KindAnalysisResult, Message: MsgAnalysis, Analysis: &AnalysisFields{
				CompositeKey: "DRUG#ABC123",
				Reason:       "異物混入",
				HealthRisk:   "腹痛",
				RiskAnalysis: "低",
			}},
		},
		{
			name:  "download link with canonical message",
			frame: `{"message":"CSVファイルが生成されました。以下のリンクからダウンロードできます。","url":"https://x/y.csv"}`,
			want:  Event{Kind: KindDownloadLink, Message: MsgDownloadReady, URL: "https://x/y.csv"},
		},
		{
			name:  "download link with any message",
			frame: `{"message":"done","url":"https://x/z.csv"}`,
			want:  Event{Kind: KindDownloadLink, Message: "done", URL: "https://x/z.csv"},
		},
		{
			name:  "completion",
			frame: `{"message":"全件の処理が完了しました"}`,
			want:  Event{Kind: KindCompletion, Message: MsgCompletion},
		},
		{
			name:  "no results",
			frame: `{"message":"条件に該当する回収情報はありませんでした。"}`,
			want:  Event{Kind: KindNoResults, Message: MsgNoResults},
		},
		{
			name:  "completion carrying a url stays terminal",
			frame: `{"message":"全件の処理が完了しました","url":"https://x/y.csv"}`,
			want:  Event{Kind: KindCompletion, Message: MsgCompletion},
		},
		{
			name:  "no results carrying a url stays terminal",
			frame: `{"message":"条件に該当する回収情報はありませんでした。","url":"https://x/y.csv"}`,
			want:  Event{Kind: KindNoResults, Message: MsgNoResults},
		},
		{
			name:  "completion with non-string url",
			frame: `{"message":"全件の処理が完了しました","url":5}`,
			want:  Event{Kind: KindCompletion, Message: MsgCompletion},
		},
		{
			name:  "non-string url is not a link",
			frame: `{"message":"done","url":{"href":"https://x/y.csv"}}`,
			want:  Event{Kind: KindUnknown, Message: "done"},
		},
		{
			name:  "empty url is not a link",
			frame: `{"message":"done","url":""}`,
			want:  Event{Kind: KindUnknown, Message: "done"},
		},
		{
			name:  "unknown discriminant",
			frame: `{"message":"処理中です"}`,
			want:  Event{Kind: KindUnknown, Message: "処理中です"},
		},
		{
			name:  "empty object",
			frame: `{}`,
			want:  Event{Kind: KindUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Classify([]byte(tt.frame))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_analysisToleratesExtraFields(t *testing.T) {
	r := MustNewRouter()
	frame := `{"message":"分析結果","data":{"timestamp":"A#1","回収理由":"r","危惧される具体的な健康被害":"h","現象・リスク分析":"a","extra":42}}`

	got, err := r.Classify([]byte(frame))
	require.NoError(t, err)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, "A#1", got.Analysis.CompositeKey)
}

func TestClassify_parseErrors(t *testing.T) {
	r := MustNewRouter()

	tests := []struct {
		name  string
		frame string
	}{
		{"not JSON", `not json`},
		{"truncated JSON", `{"message":"総検索件数"`},
		{"array frame", `[1,2,3]`},
		{"null frame", `null`},
		{"empty frame", ``},
		{"message not a string", `{"message":5}`},
		{"total count missing data", `{"message":"総検索件数"}`},
		{"total count null data", `{"message":"総検索件数","data":null}`},
		{"total count string data", `{"message":"総検索件数","data":"3"}`},
		{"total count fractional", `{"message":"総検索件数","data":2.5}`},
		{"total count negative", `{"message":"総検索件数","data":-1}`},
		{"analysis missing data", `{"message":"分析結果"}`},
		{"analysis data not object", `{"message":"分析結果","data":"text"}`},
		{"analysis missing key", `{"message":"分析結果","data":{"回収理由":"r","危惧される具体的な健康被害":"h","現象・リスク分析":"a"}}`},
		{"analysis missing free text", `{"message":"分析結果","data":{"timestamp":"A#1","回収理由":"r"}}`},
		{"analysis wrong field type", `{"message":"分析結果","data":{"timestamp":7,"回収理由":"r","危惧される具体的な健康被害":"h","現象・リスク分析":"a"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Classify([]byte(tt.frame))
			require.Error(t, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestNewRequests(t *testing.T) {
	c := types.SearchCriteria{Email: "a@example.com", Keyword: "錠剤", Source: types.SourceFDA, Period: "2024"}

	reqs := NewRequests(c)
	require.Len(t, reqs, 2)
	assert.Equal(t, ActionSearch, reqs[0].Action)
	assert.Equal(t, ActionPMDA, reqs[1].Action)
	assert.Equal(t, reqs[0].Data, reqs[1].Data)

	b, err := json.Marshal(reqs[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"sendMessage","data":{"keyword":"錠剤","period":"2024","source":"FDA","email":"a@example.com"}}`, string(b))
}

func TestKind_Terminal(t *testing.T) {
	assert.True(t, KindCompletion.Terminal())
	assert.True(t, KindNoResults.Terminal())
	assert.False(t, KindAnalysisResult.Terminal())
	assert.Equal(t, "download_link", KindDownloadLink.String())
}
