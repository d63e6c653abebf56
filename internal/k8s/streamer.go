package k8s

import (
	"bufio"
	"context"
	"io"
	"log"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
)

// Line is one log line read from a pod container, carrying enough
// Kubernetes context for the reader layer to attach as message metadata
// without wd's parser chain needing to know anything about Kubernetes.
type Line struct {
	Text      string
	Namespace string
	Pod       string
	Container string
	Node      string
	Labels    map[string]string
}

// PodLogStreamer streams logs from a single container in a pod
type PodLogStreamer struct {
	clientset *kubernetes.Clientset
	pod       *corev1.Pod
	container string
	output    chan<- Line
	ctx       context.Context
	cancel    context.CancelFunc
	tailLines *int64
	since     *int64
}

// NewPodLogStreamer creates a new pod log streamer
func NewPodLogStreamer(
	clientset *kubernetes.Clientset,
	pod *corev1.Pod,
	container string,
	output chan<- Line,
	parentCtx context.Context,
	tailLines *int64,
	since *int64,
) *PodLogStreamer {
	ctx, cancel := context.WithCancel(parentCtx)
	return &PodLogStreamer{
		clientset: clientset,
		pod:       pod,
		container: container,
		output:    output,
		ctx:       ctx,
		cancel:    cancel,
		tailLines: tailLines,
		since:     since,
	}
}

// Start starts streaming logs from the pod
func (s *PodLogStreamer) Start() {
	go s.streamLogs()
}

// Stop stops the log streaming
func (s *PodLogStreamer) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// streamLogs streams logs from the pod container
func (s *PodLogStreamer) streamLogs() {
	// Build pod log options
	opts := &corev1.PodLogOptions{
		Container:  s.container,
		Follow:     true,
		Timestamps: true,
	}

	// Set tail lines if specified
	if s.tailLines != nil && *s.tailLines >= 0 {
		opts.TailLines = s.tailLines
	}

	// Set since seconds if specified
	if s.since != nil && *s.since > 0 {
		opts.SinceSeconds = s.since
	}

	// Get log stream request
	req := s.clientset.CoreV1().Pods(s.pod.Namespace).GetLogs(s.pod.Name, opts)

	// Open stream
	stream, err := req.Stream(s.ctx)
	if err != nil {
		log.Printf("Error opening log stream for pod %s/%s container %s: %v",
			s.pod.Namespace, s.pod.Name, s.container, err)
		return
	}
	defer stream.Close()

	// Read logs line by line
	scanner := bufio.NewScanner(stream)
	// Set larger buffer for long log lines
	const maxScanTokenSize = 1024 * 1024 // 1MB
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)

	for scanner.Scan() {
		select {
		case <-s.ctx.Done():
			return
		default:
			line := scanner.Text()
			if line != "" {
				select {
				case s.output <- s.toLine(line):
				case <-s.ctx.Done():
					return
				}
			}
		}
	}

	// Check for scanner errors
	if err := scanner.Err(); err != nil && err != io.EOF {
		log.Printf("Error reading logs from pod %s/%s container %s: %v",
			s.pod.Namespace, s.pod.Name, s.container, err)
	}
}

// toLine strips the RFC3339Nano timestamp prefix the Kubernetes API adds
// when PodLogOptions.Timestamps is set ("2024-01-15T10:30:45.123456789Z
// actual message") and wraps the remaining text with this stream's pod
// context. The message text itself is left completely unparsed here: wd's
// own parser chain decides whether it's JSON, logrus, klog, or plain.
func (s *PodLogStreamer) toLine(line string) Line {
	actualMessage := line
	if len(line) > 31 && line[4] == '-' && line[7] == '-' && line[10] == 'T' {
		for i := 20; i < min(35, len(line)-1); i++ {
			if line[i] == 'Z' && i+1 < len(line) && line[i+1] == ' ' {
				actualMessage = line[i+2:]
				break
			}
		}
	}

	return Line{
		Text:      actualMessage,
		Namespace: s.pod.Namespace,
		Pod:       s.pod.Name,
		Container: s.container,
		Node:      s.pod.Spec.NodeName,
		Labels:    s.pod.Labels,
	}
}
