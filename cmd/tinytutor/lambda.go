package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/spf13/cobra"

	"github.com/brainboyai/tiny-tutor-api/internal/container"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve the HTTP API behind API Gateway on AWS Lambda",
	Long: `Run the API as an AWS Lambda handler for API Gateway proxy events.

The game job runner does not run inside the function; deploy
"tinytutor worker" next to it with QUEUE_DRIVER=redis.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := container.New(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer c.Close()

		adapter := chiadapter.New(c.Handler())
		lambda.StartWithOptions(
			func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
				return adapter.ProxyWithContext(ctx, req)
			},
			lambda.WithContext(cmd.Context()),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}
