package cloudwatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"github.com/harborlog/harborlog/pkg/util/console"
)

// API is the subset of the CloudWatch Logs client the forwarder uses.
type API interface {
	CreateLogGroup(ctx context.Context, params *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStream(ctx context.Context, params *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
	PutLogEvents(ctx context.Context, params *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
	GetLogEvents(ctx context.Context, params *cloudwatchlogs.GetLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetLogEventsOutput, error)
}

// Forwarder appends batches of events to one log stream. It owns the
// sequence token: each append must carry the token returned by the
// previous successful append. Not safe for concurrent use; the tool's
// single control thread is the only writer.
type Forwarder struct {
	api    API
	group  string
	stream string

	sequenceToken *string
}

// NewForwarder validates the destination names and returns a forwarder
// bound to the given group and stream.
func NewForwarder(api API, group, stream string) (*Forwarder, error) {
	if err := validateGroupName(group); err != nil {
		return nil, err
	}
	if err := validateStreamName(stream); err != nil {
		return nil, err
	}
	return &Forwarder{api: api, group: group, stream: stream}, nil
}

// EnsureDestination idempotently creates the log group and log stream.
// "Already exists" is success. When the stream already exists, its upload
// sequence token is adopted so the next append lines up with prior writes.
func (f *Forwarder) EnsureDestination(ctx context.Context) error {
	console.Debugf("=== Forwarder.EnsureDestination %s/%s", f.group, f.stream)

	_, err := f.api.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(f.group),
	})
	if err != nil {
		var exists *types.ResourceAlreadyExistsException
		if !errors.As(err, &exists) {
			return &DestinationError{Kind: "log group", Name: f.group, Err: mapAPIError(err)}
		}
		console.Debugf("log group %q already exists", f.group)
	}

	describe, err := f.api.DescribeLogStreams(ctx, &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName:        aws.String(f.group),
		LogStreamNamePrefix: aws.String(f.stream),
	})
	if err != nil {
		return &DestinationError{Kind: "log stream", Name: f.stream, Err: mapAPIError(err)}
	}
	for _, s := range describe.LogStreams {
		if aws.ToString(s.LogStreamName) == f.stream {
			f.sequenceToken = s.UploadSequenceToken
			console.Debugf("log stream %q already exists", f.stream)
			return nil
		}
	}

	_, err = f.api.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(f.group),
		LogStreamName: aws.String(f.stream),
	})
	if err != nil {
		var exists *types.ResourceAlreadyExistsException
		if !errors.As(err, &exists) {
			return &DestinationError{Kind: "log stream", Name: f.stream, Err: mapAPIError(err)}
		}
	}
	return nil
}

// Append sends one batch. Events must be in non-decreasing timestamp order.
// An empty batch is a no-op and leaves the sequence token untouched. On a
// stale token the held token is left as-is and ErrSequenceTokenMismatch
// surfaces; there is no refresh or retry.
func (f *Forwarder) Append(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	logEvents := make([]types.InputLogEvent, len(events))
	for i, ev := range events {
		if i > 0 && ev.Timestamp < events[i-1].Timestamp {
			return fmt.Errorf("%w: event %d precedes event %d", ErrInvalidOrder, i, i-1)
		}
		logEvents[i] = types.InputLogEvent{
			Timestamp: aws.Int64(ev.Timestamp),
			Message:   aws.String(ev.Message),
		}
	}

	out, err := f.api.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(f.group),
		LogStreamName: aws.String(f.stream),
		LogEvents:     logEvents,
		SequenceToken: f.sequenceToken,
	})
	if err != nil {
		var stale *types.InvalidSequenceTokenException
		if errors.As(err, &stale) {
			return fmt.Errorf("%w: %v", ErrSequenceTokenMismatch, err)
		}
		return fmt.Errorf("failed to put log events: %w", mapAPIError(err))
	}

	f.sequenceToken = out.NextSequenceToken
	return nil
}

// Events reads the stream back from the head, for verification tooling.
func (f *Forwarder) Events(ctx context.Context) ([]Event, error) {
	console.Debugf("=== Forwarder.Events %s/%s", f.group, f.stream)

	out, err := f.api.GetLogEvents(ctx, &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(f.group),
		LogStreamName: aws.String(f.stream),
		StartFromHead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get log events: %w", mapAPIError(err))
	}

	events := make([]Event, len(out.Events))
	for i, ev := range out.Events {
		events[i] = Event{
			Timestamp:     aws.ToInt64(ev.Timestamp),
			Message:       aws.ToString(ev.Message),
			IngestionTime: aws.ToInt64(ev.IngestionTime),
		}
	}
	return events, nil
}
