package graph

import (
	"sort"

	"github.com/dshills/archcritic/internal/extract"
	"github.com/dshills/archcritic/internal/schema"
)

// UsersNode is the entry node of every architecture graph.
const UsersNode = "Users"

// Build derives the dependency graph for a. Edges follow a fixed template:
// users to the mobile layer, mobile layer to the core, core to the hosting
// target, then every other module and every external system into the core.
func Build(a schema.Analysis) schema.Graph {
	edges := []schema.Edge{
		{From: UsersNode, To: extract.ModuleMobile},
		{From: extract.ModuleMobile, To: extract.ModuleCore},
		{From: extract.ModuleCore, To: string(a.Hosting)},
	}
	for _, m := range a.Modules {
		if m == extract.ModuleCore || m == extract.ModuleMobile {
			continue
		}
		edges = append(edges, schema.Edge{From: m, To: extract.ModuleCore})
	}
	for _, ext := range a.External {
		edges = append(edges, schema.Edge{From: ext, To: extract.ModuleCore})
	}

	return schema.Graph{Nodes: nodes(edges), Edges: edges}
}

func nodes(edges []schema.Edge) []string {
	seen := make(map[string]struct{}, len(edges)+1)
	out := make([]string, 0, len(edges)+1)
	for _, e := range edges {
		for _, n := range [2]string{e.From, e.To} {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
