package sink

import (
	"encoding/json"

	"github.com/matzehuels/chaosgame/pkg/render"
)

// RenderJSON exports the cloud as indented JSON.
func RenderJSON(c *render.Cloud) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
