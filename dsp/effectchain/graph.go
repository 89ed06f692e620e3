package effectchain

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// InputNodeID is the reserved node ID for the chain input.
	InputNodeID = "_input"
	// OutputNodeID is the reserved node ID for the chain output.
	OutputNodeID = "_output"
)

// graphNode is a JSON-serializable node in the chain description.
type graphNode struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Bypassed bool   `json:"bypassed"`
	Params   any    `json:"params"`
}

// graphConnection is a JSON-serializable edge between two nodes.
type graphConnection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// graphState is the root JSON structure of a chain description.
type graphState struct {
	Nodes       []graphNode       `json:"nodes"`
	Connections []graphConnection `json:"connections"`
}

// ParseGraph parses a JSON chain description into serial node parameters.
// Without connections the nodes run in declaration order. With connections
// they run in topological order (Kahn's algorithm, ties broken by
// declaration order). The reserved input and output nodes are dropped. An
// empty string yields an empty chain.
func ParseGraph(raw string) ([]Params, error) {
	if raw == "" {
		return nil, nil
	}

	var state graphState

	err := json.Unmarshal([]byte(raw), &state)
	if err != nil {
		return nil, fmt.Errorf("invalid chain graph json: %w", err)
	}

	ids := make([]string, 0, len(state.Nodes))
	nodes := make(map[string]Params, len(state.Nodes))

	for _, n := range state.Nodes {
		if n.ID == "" || n.Type == "" {
			continue
		}

		if _, dup := nodes[n.ID]; dup {
			return nil, fmt.Errorf("invalid chain graph: duplicate node id %q", n.ID)
		}

		num, str := parseNodeParams(n.Params)
		nodes[n.ID] = Params{
			ID:       n.ID,
			Type:     n.Type,
			Bypassed: n.Bypassed,
			Num:      num,
			Str:      str,
		}
		ids = append(ids, n.ID)
	}

	order := ids
	if len(state.Connections) > 0 {
		order, err = topoOrder(ids, nodes, state.Connections)
		if err != nil {
			return nil, err
		}
	}

	out := make([]Params, 0, len(order))
	for _, id := range order {
		if isIONode(id) {
			continue
		}
		out = append(out, nodes[id])
	}

	return out, nil
}

func topoOrder(ids []string, nodes map[string]Params, conns []graphConnection) ([]string, error) {
	outgoing := make(map[string][]string, len(ids))
	indegree := make(map[string]int, len(ids))

	for _, c := range conns {
		if c.From == "" || c.To == "" || c.From == c.To {
			continue
		}

		if _, ok := nodes[c.From]; !ok {
			continue
		}

		if _, ok := nodes[c.To]; !ok {
			continue
		}

		outgoing[c.From] = append(outgoing[c.From], c.To)
		indegree[c.To]++
	}

	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(ids))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		order = append(order, id)
		for _, to := range outgoing[id] {
			indegree[to]--
			if indegree[to] == 0 {
				queue = append(queue, to)
			}
		}
	}

	if len(order) != len(ids) {
		return nil, errors.New("invalid chain graph: contains cycle")
	}

	return order, nil
}

// parseNodeParams extracts numeric and string parameters from a raw JSON params value.
func parseNodeParams(raw any) (map[string]float64, map[string]string) {
	num := map[string]float64{}
	str := map[string]string{}

	params, ok := raw.(map[string]any)
	if !ok || params == nil {
		return num, str
	}

	for k, v := range params {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case string:
			str[k] = t
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num, str
}

func isIONode(id string) bool {
	return id == InputNodeID || id == OutputNodeID
}
