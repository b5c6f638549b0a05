// Package workflow starts Step Functions executions.
package workflow

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
)

// Client is the subset of the Step Functions API the starter uses.
type Client interface {
	StartExecution(ctx context.Context, params *sfn.StartExecutionInput, optFns ...func(*sfn.Options)) (*sfn.StartExecutionOutput, error)
}

// Starter launches executions of a single configured state machine.
type Starter struct {
	client          Client
	stateMachineARN string
}

func NewStarter(client Client, stateMachineARN string) *Starter {
	return &Starter{client: client, stateMachineARN: stateMachineARN}
}

// Start begins one execution with the raw input passed through unchanged and
// returns the execution ARN.
func (s *Starter) Start(ctx context.Context, input []byte) (string, error) {
	out, err := s.client.StartExecution(ctx, &sfn.StartExecutionInput{
		StateMachineArn: aws.String(s.stateMachineARN),
		Input:           aws.String(string(input)),
	})
	if err != nil {
		return "", fmt.Errorf("start execution of %s: %w", s.stateMachineARN, err)
	}
	return aws.ToString(out.ExecutionArn), nil
}
