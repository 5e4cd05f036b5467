package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/graphflow-ai/graphflow/knowledge"
	"github.com/graphflow-ai/graphflow/types"
)

// builtinTemplates returns the agent variants every factory starts with.
func builtinTemplates() []Template {
	return []Template{
		researcherTemplate(),
		assistantTemplate(),
		executorTemplate(),
		dataScientistTemplate(),
		developerTemplate(),
		productManagerTemplate(),
		securityTemplate(),
	}
}

// stringField extracts a required string field from task data.
func stringField(data map[string]any, key string) (string, error) {
	v, ok := data[key]
	if !ok {
		return "", types.Errorf(types.ErrMalformedTask, "field %q is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", types.Errorf(types.ErrMalformedTask, "field %q must be a string", key)
	}
	return s, nil
}

// promptCapability builds a handler that renders a prompt from one data
// field and completes it through the agent's provider.
func promptCapability(a *Agent, field, format string) CapabilityFunc {
	return func(ctx context.Context, data map[string]any) (any, error) {
		value, err := stringField(data, field)
		if err != nil {
			return nil, err
		}
		return a.Complete(ctx, fmt.Sprintf(format, value))
	}
}

func researcherTemplate() Template {
	return Template{
		Name:         "researcher",
		Description:  "Research specialist agent",
		Capabilities: []string{"research", "analyze", "summarize"},
		Setup: func(a *Agent) {
			a.RegisterCapability("research", "Research a topic",
				promptCapability(a, "topic", "Research about %s"))
			a.RegisterCapability("analyze", "Analyze data",
				promptCapability(a, "data", "Analyze this data: %s"))
			a.RegisterCapability("summarize", "Summarize text",
				promptCapability(a, "text", "Summarize this: %s"))
		},
	}
}

func assistantTemplate() Template {
	return Template{
		Name:         "assistant",
		Description:  "General purpose assistant agent",
		Capabilities: []string{"chat", "help", "explain"},
		Setup: func(a *Agent) {
			a.RegisterCapability("chat", "Converse with the user",
				func(ctx context.Context, data map[string]any) (any, error) {
					message, err := stringField(data, "message")
					if err != nil {
						return nil, err
					}
					return a.Complete(ctx, message)
				})
			a.RegisterCapability("help", "Help with a topic",
				promptCapability(a, "topic", "Help with %s"))
			a.RegisterCapability("explain", "Explain a concept",
				promptCapability(a, "concept", "Explain %s"))
		},
	}
}

func executorTemplate() Template {
	return Template{
		Name:         "executor",
		Description:  "Task execution specialist",
		Capabilities: []string{"execute", "monitor", "report"},
		Setup: func(a *Agent) {
			// execute runs the payload through the generic processor when
			// one is set, records the result in memory under task_<id>,
			// and returns it.
			a.RegisterCapability("execute", "Execute a task and record the result",
				func(ctx context.Context, data map[string]any) (any, error) {
					taskID, _ := data["task_id"].(string)
					if taskID == "" {
						taskID = uuid.NewString()
					}

					var result any = data
					if a.processor != nil {
						out, err := a.processor(ctx, &Task{ID: taskID, Type: "execute", Data: data})
						if err != nil {
							return nil, err
						}
						result = out
					}

					if a.memory != nil {
						if err := a.Remember(ctx, "task_"+taskID, result); err != nil {
							return nil, err
						}
					}
					return result, nil
				})
			a.RegisterCapability("monitor", "Look up a recorded task result",
				func(ctx context.Context, data map[string]any) (any, error) {
					taskID, err := stringField(data, "task_id")
					if err != nil {
						return nil, err
					}
					value, ok, err := a.Recall(ctx, "task_"+taskID)
					if err != nil {
						return nil, err
					}
					if !ok {
						return nil, nil
					}
					return value, nil
				})
			a.RegisterCapability("report", "Collect recorded results for several tasks",
				func(ctx context.Context, data map[string]any) (any, error) {
					ids, ok := data["task_ids"].([]string)
					if !ok {
						if raw, isAny := data["task_ids"].([]any); isAny {
							for _, v := range raw {
								if s, isStr := v.(string); isStr {
									ids = append(ids, s)
								}
							}
						}
					}
					results := make([]any, 0, len(ids))
					for _, id := range ids {
						value, found, err := a.Recall(ctx, "task_"+id)
						if err != nil {
							return nil, err
						}
						if found {
							results = append(results, value)
						}
					}
					return map[string]any{"task_results": results}, nil
				})
		},
	}
}

func dataScientistTemplate() Template {
	return Template{
		Name:         "data_scientist",
		Description:  "Data science and analysis specialist",
		Capabilities: []string{"analyze_data", "visualize", "predict", "research", "analyze"},
		Setup: func(a *Agent) {
			a.RegisterCapability("analyze_data", "Analyze datasets and generate insights",
				func(ctx context.Context, data map[string]any) (any, error) {
					result, err := a.Complete(ctx, fmt.Sprintf("Analyze this dataset and provide insights: %v", data))
					if err != nil {
						return nil, err
					}
					if a.memory != nil {
						if err := a.Remember(ctx, "last_analysis", result); err != nil {
							return nil, err
						}
					}
					if a.graph != nil {
						node := &knowledge.Node{
							ID:         "analysis_" + uuid.NewString(),
							Type:       "analysis",
							Properties: map[string]any{"result": result},
						}
						if err := a.graph.AddNode(ctx, node); err != nil {
							return nil, err
						}
					}
					return result, nil
				})
			a.RegisterCapability("visualize", "Create data visualizations",
				func(ctx context.Context, data map[string]any) (any, error) {
					return a.Complete(ctx, fmt.Sprintf("Generate visualization code for: %v", data))
				})
			a.RegisterCapability("predict", "Make predictions using ML models",
				func(ctx context.Context, data map[string]any) (any, error) {
					return a.Complete(ctx, fmt.Sprintf("Make predictions for: %v", data))
				})
			a.RegisterCapability("research", "Research a topic",
				promptCapability(a, "topic", "Research about %s"))
			a.RegisterCapability("analyze", "Analyze data",
				promptCapability(a, "data", "Analyze this data: %s"))
		},
	}
}

func developerTemplate() Template {
	return Template{
		Name:         "developer",
		Description:  "Software development specialist",
		Capabilities: []string{"code_review", "debug", "test"},
		Setup: func(a *Agent) {
			a.RegisterCapability("code_review", "Review and improve code",
				promptCapability(a, "code", "Review this code and suggest improvements: %s"))
			a.RegisterCapability("debug", "Debug code issues",
				func(ctx context.Context, data map[string]any) (any, error) {
					errMsg, err := stringField(data, "error")
					if err != nil {
						return nil, err
					}
					code, err := stringField(data, "code")
					if err != nil {
						return nil, err
					}
					return a.Complete(ctx, fmt.Sprintf("Debug this error: %s\nCode: %s", errMsg, code))
				})
			a.RegisterCapability("test", "Generate test cases",
				promptCapability(a, "code", "Generate test cases for: %s"))
		},
	}
}

func productManagerTemplate() Template {
	return Template{
		Name:         "product_manager",
		Description:  "Product management specialist",
		Capabilities: []string{"create_roadmap", "prioritize", "write_specs"},
		Setup: func(a *Agent) {
			a.RegisterCapability("create_roadmap", "Create a product roadmap",
				func(ctx context.Context, data map[string]any) (any, error) {
					return a.Complete(ctx, fmt.Sprintf("Create a product roadmap for: %v", data["features"]))
				})
			a.RegisterCapability("prioritize", "Prioritize work items",
				func(ctx context.Context, data map[string]any) (any, error) {
					return a.Complete(ctx, fmt.Sprintf("Prioritize these items: %v", data["items"]))
				})
			a.RegisterCapability("write_specs", "Write feature specifications",
				promptCapability(a, "feature", "Write specifications for: %s"))
		},
	}
}

func securityTemplate() Template {
	return Template{
		Name:         "security",
		Description:  "Security specialist",
		Capabilities: []string{"audit", "scan", "recommend"},
		Setup: func(a *Agent) {
			a.RegisterCapability("audit", "Perform security audits",
				promptCapability(a, "target", "Perform security audit of: %s"))
			a.RegisterCapability("scan", "Scan for vulnerabilities",
				promptCapability(a, "code", "Scan for vulnerabilities in: %s"))
			a.RegisterCapability("recommend", "Security recommendations",
				func(ctx context.Context, data map[string]any) (any, error) {
					return a.Complete(ctx, fmt.Sprintf("Provide security recommendations for: %v", data["findings"]))
				})
		},
	}
}
