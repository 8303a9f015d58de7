package results

import "github.com/usestring/recall-stream/pkg/types"

// EmitDownloadLink maps a download link URL to an appendable artifact.
func EmitDownloadLink(url string) types.Artifact {
	return types.Artifact{
		Kind: types.ArtifactDownloadLink,
		Link: &types.DownloadLink{URL: url},
	}
}
