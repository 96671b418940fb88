package cli

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harborlog/harborlog/pkg/cloudwatch"
	"github.com/harborlog/harborlog/pkg/docker"
	"github.com/harborlog/harborlog/pkg/global"
	"github.com/harborlog/harborlog/pkg/relay"
	"github.com/harborlog/harborlog/pkg/util/console"
)

var (
	dockerImageFlag   string
	bashCommandFlag   string
	containerNameFlag string
	groupFlag         string
	streamFlag        string
	accessKeyIDFlag   string
	secretKeyFlag     string
	regionFlag        string
	endpointFlag      string
)

// Same pattern the engine enforces for container names.
var containerNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]+$`)

// Keeps interpreter-based images from buffering stdout, so lines arrive as
// they are printed rather than on exit.
var containerEnv = []string{"PYTHONUNBUFFERED=1"}

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:     "harborlog",
		Short:   "Run a container and forward its output to CloudWatch Logs",
		Version: fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime),
		RunE:    run,
		Args:    cobra.NoArgs,
		// This stops errors being printed because we print them in cmd/harborlog/main.go
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.Verbose {
				console.SetLevel(console.DebugLevel)
			}
			cmd.SilenceUsage = true
		},
		SilenceErrors: true,
	}
	setPersistentFlags(&rootCmd)
	setRunFlags(&rootCmd)

	return &rootCmd, nil
}

func setPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")
}

func setRunFlags(cmd *cobra.Command) {
	bindForwardingFlags(cmd.Flags())

	for _, name := range []string{"docker-image", "bash-command", "aws-cloudwatch-group", "aws-cloudwatch-stream"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

func bindForwardingFlags(flags *pflag.FlagSet) {
	flags.StringVar(&dockerImageFlag, "docker-image", "", "Name of the Docker image to run")
	flags.StringVar(&bashCommandFlag, "bash-command", "", "Command to execute in the image, via /bin/sh -c")
	flags.StringVar(&containerNameFlag, "docker-container-name", "", "Name for the container, engine-assigned if omitted")
	flags.StringVar(&groupFlag, "aws-cloudwatch-group", "", "Name of the CloudWatch Logs group")
	flags.StringVar(&streamFlag, "aws-cloudwatch-stream", "", "Name of the CloudWatch Logs stream")
	flags.StringVar(&accessKeyIDFlag, "aws-access-key-id", "", "AWS access key ID, default credential chain if omitted")
	flags.StringVar(&secretKeyFlag, "aws-secret-access-key", "", "AWS secret access key")
	flags.StringVar(&regionFlag, "aws-region", "", "AWS region name")
	flags.StringVar(&endpointFlag, "aws-endpoint", "", "Custom endpoint URL for AWS services")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if containerNameFlag != "" && !containerNameRegex.MatchString(containerNameFlag) {
		return fmt.Errorf("container name %q is invalid: names start with an alphanumeric and contain a-z, A-Z, 0-9, '_', '.' and '-'", containerNameFlag)
	}

	console.Info("connecting to docker daemon")
	dockerClient, err := docker.NewClient(ctx)
	if err != nil {
		return err
	}

	console.Info("connecting to CloudWatch Logs")
	logsClient, err := cloudwatch.NewClient(ctx, cloudwatch.Options{
		Region:          regionFlag,
		Endpoint:        endpointFlag,
		AccessKeyID:     accessKeyIDFlag,
		SecretAccessKey: secretKeyFlag,
	})
	if err != nil {
		return err
	}

	forwarder, err := cloudwatch.NewForwarder(logsClient, groupFlag, streamFlag)
	if err != nil {
		return err
	}

	r := &relay.Relay{
		Runtime:       dockerClient,
		Forwarder:     forwarder,
		Image:         dockerImageFlag,
		Command:       bashCommandFlag,
		ContainerName: containerNameFlag,
		Env:           containerEnv,
	}
	return r.Run(ctx)
}
