package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	internalerrors "github.com/standardbeagle/decodex/internal/errors"
)

// LoadKDL loads configuration from a .decodex.kdl file under projectRoot. A
// missing file is not an error — the documented defaults apply (spec §6).
func LoadKDL(projectRoot string) (*Config, error) {
	kdlPath := filepath.Join(projectRoot, ".decodex.kdl")
	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return Default(), nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, internalerrors.NewConfigError("path", kdlPath, err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, err
	}

	if cfg.Project.Root == "" || cfg.Project.Root == "." {
		if abs, err := filepath.Abs(projectRoot); err == nil {
			cfg.Project.Root = abs
		}
	}
	return cfg, nil
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, internalerrors.NewConfigError("kdl", content, err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				assignSimpleString(cn, "root", func(v string) { cfg.Project.Root = v })
				assignSimpleString(cn, "name", func(v string) { cfg.Project.Name = v })
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "deadline_seconds":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.DeadlineSeconds = v
					}
				case "interactive_confirmation":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.InteractiveConfirmation = b
					}
				case "collect_all":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.CollectAll = b
					}
				case "regex":
					if s, ok := firstStringArg(cn); ok {
						cfg.Search.Regex = s
					}
				case "wordlist_source":
					cfg.Search.WordlistSource = append(cfg.Search.WordlistSource, collectStringArgs(cn)...)
				case "depth_penalty":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Search.DepthPenalty = v
					}
				case "decoder_batch_size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.DecoderBatchSize = v
					}
				case "parallel_batch_size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.ParallelBatchSize = v
					}
				case "initial_prune_threshold":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.InitialPruneThreshold = v
					}
				case "english_sensitivity_overrides":
					for _, on := range cn.Children {
						name := nodeName(on)
						if s, ok := firstStringArg(on); ok {
							cfg.Search.EnglishSensitivityOverrides[name] = s
						}
					}
				}
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}

// Describe renders the loaded configuration as a human-readable summary,
// printed by the CLI's config subcommands.
func (c *Config) Describe() string {
	return fmt.Sprintf(
		"project=%s deadline=%ds collectAll=%v interactive=%v batch=%d/%d prune=%d",
		c.Project.Name, c.Search.DeadlineSeconds, c.Search.CollectAll,
		c.Search.InteractiveConfirmation, c.Search.DecoderBatchSize,
		c.Search.ParallelBatchSize, c.Search.InitialPruneThreshold,
	)
}
