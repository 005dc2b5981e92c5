package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chaosgame/pkg/core/palette"
	"github.com/matzehuels/chaosgame/pkg/observability"
	"github.com/matzehuels/chaosgame/pkg/render"
	"github.com/matzehuels/chaosgame/pkg/render/sink"
)

// Render draws the cloud in every requested format. Formats are rendered
// concurrently.
func Render(ctx context.Context, cloud *render.Cloud, opts Options) (artifacts map[string][]byte, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	span := observability.Begin(ctx, observability.OpRender, strings.Join(opts.Formats, ","))
	defer func() {
		n := 0
		for _, data := range artifacts {
			n += len(data)
		}
		span.End(n, err)
	}()

	var mu sync.Mutex
	artifacts = make(map[string][]byte, len(opts.Formats))
	sinkOpts := opts.SinkOptions()

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(cloud, format, sinkOpts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(cloud *render.Cloud, format string, opts []sink.Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(cloud, opts...), nil
	case FormatPNG:
		return sink.RenderPNG(cloud, opts...)
	case FormatJSON:
		return sink.RenderJSON(cloud)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// resolveBackground accepts hex colors and palette references.
func resolveBackground(bg string) (string, error) {
	return palette.Resolve(palette.Color(bg))
}
