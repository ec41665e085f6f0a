package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/healthbridge/internal/metric"
)

type catalogEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	metric.Attributes
}

func catalogEntries() []catalogEntry {
	var catalog []catalogEntry
	for _, key := range metric.Known {
		if key == metric.TestConnection {
			continue
		}
		catalog = append(catalog, catalogEntry{
			Key:        key,
			Name:       metric.BaseName(key),
			Attributes: metric.Schema(key),
		})
	}
	return catalog
}

func (h *handlers) metricCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(catalogEntries())
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) notifications(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rows, err := h.ds.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
