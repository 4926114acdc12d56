package api

import "github.com/otterscale/kubeclient/rest"

// ListOptions tunes list and watch operations. The zero value lists
// everything once.
type ListOptions struct {
	Pretty          bool
	LabelSelector   string
	FieldSelector   string
	ResourceVersion string
	Limit           int64
	Continue        string
	// TimeoutSeconds is the server-side request timeout. For watches it
	// bounds the stream; the server closes it cleanly when it expires.
	TimeoutSeconds int64
	// Watch asks for the streaming change feed instead of a snapshot.
	Watch bool
}

// query renders the options as ordered query parameters. Unset options
// are omitted so the request stays minimal and cacheable.
func (o ListOptions) query() []rest.Param {
	var params []rest.Param
	if o.Pretty {
		params = append(params, rest.Param{Key: "pretty", Value: true})
	}
	if o.LabelSelector != "" {
		params = append(params, rest.Param{Key: "labelSelector", Value: o.LabelSelector})
	}
	if o.FieldSelector != "" {
		params = append(params, rest.Param{Key: "fieldSelector", Value: o.FieldSelector})
	}
	if o.ResourceVersion != "" {
		params = append(params, rest.Param{Key: "resourceVersion", Value: o.ResourceVersion})
	}
	if o.Limit > 0 {
		params = append(params, rest.Param{Key: "limit", Value: o.Limit})
	}
	if o.Continue != "" {
		params = append(params, rest.Param{Key: "continue", Value: o.Continue})
	}
	if o.TimeoutSeconds > 0 {
		params = append(params, rest.Param{Key: "timeoutSeconds", Value: o.TimeoutSeconds})
	}
	if o.Watch {
		params = append(params, rest.Param{Key: "watch", Value: true})
	}
	return params
}

// GetOptions tunes single-object reads.
type GetOptions struct {
	Pretty bool
}

func (o GetOptions) query() []rest.Param {
	if o.Pretty {
		return []rest.Param{{Key: "pretty", Value: true}}
	}
	return nil
}

// DeleteOptions tunes delete operations. The query carries the scalar
// knobs; Preconditions travel in the request body when set.
type DeleteOptions struct {
	Pretty             bool
	GracePeriodSeconds int64
	PropagationPolicy  string
	DryRun             []string
}

func (o DeleteOptions) query() []rest.Param {
	var params []rest.Param
	if o.Pretty {
		params = append(params, rest.Param{Key: "pretty", Value: true})
	}
	if o.GracePeriodSeconds > 0 {
		params = append(params, rest.Param{Key: "gracePeriodSeconds", Value: o.GracePeriodSeconds})
	}
	if o.PropagationPolicy != "" {
		params = append(params, rest.Param{Key: "propagationPolicy", Value: o.PropagationPolicy})
	}
	if len(o.DryRun) > 0 {
		params = append(params, rest.Param{Key: "dryRun", Value: o.DryRun})
	}
	return params
}

// PodLogOptions tunes log reads.
type PodLogOptions struct {
	Container    string
	Follow       bool
	Previous     bool
	Timestamps   bool
	TailLines    int64
	SinceSeconds int64
}

func (o PodLogOptions) query() []rest.Param {
	var params []rest.Param
	if o.Container != "" {
		params = append(params, rest.Param{Key: "container", Value: o.Container})
	}
	if o.Follow {
		params = append(params, rest.Param{Key: "follow", Value: true})
	}
	if o.Previous {
		params = append(params, rest.Param{Key: "previous", Value: true})
	}
	if o.Timestamps {
		params = append(params, rest.Param{Key: "timestamps", Value: true})
	}
	if o.TailLines > 0 {
		params = append(params, rest.Param{Key: "tailLines", Value: o.TailLines})
	}
	if o.SinceSeconds > 0 {
		params = append(params, rest.Param{Key: "sinceSeconds", Value: o.SinceSeconds})
	}
	return params
}

// ExecOptions describes a pod exec. Command is required; the remaining
// fields select the container and the attached streams.
type ExecOptions struct {
	Command   []string
	Container string
	Stdin     bool
	Stdout    bool
	Stderr    bool
	TTY       bool
}

// query renders the exec parameters; the command list expands into one
// repeated pair per argument, in order.
func (o ExecOptions) query() []rest.Param {
	params := []rest.Param{{Key: "command", Value: o.Command}}
	if o.Container != "" {
		params = append(params, rest.Param{Key: "container", Value: o.Container})
	}
	params = append(params,
		rest.Param{Key: "stdin", Value: o.Stdin},
		rest.Param{Key: "stdout", Value: o.Stdout},
		rest.Param{Key: "stderr", Value: o.Stderr},
		rest.Param{Key: "tty", Value: o.TTY},
	)
	return params
}
