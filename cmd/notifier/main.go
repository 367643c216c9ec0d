// Command notifier is the Lambda attached to the teams table stream.
package main

import (
	"context"
	"strings"

	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/alex-pricope/hackathon-judging-api/notifier"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/spf13/viper"
)

func main() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("notifier.eventName", "AAIS 2026 EUC Hackathon")
	viper.SetDefault("notifier.portalUrl", "https://aais2026euchackathon.com/login.html")
	viper.SetDefault("log.level", "info")
	_ = viper.BindEnv("notifier.topicArn", "SNS_TOPIC_ARN")
	_ = viper.BindEnv("log.level", "LOG_LEVEL")

	logging.BoostrapLogger(viper.GetString("log.level"), true)

	var sink notifier.Sink = notifier.LogSink{}
	if topicArn := viper.GetString("notifier.topicArn"); topicArn != "" {
		cfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			logging.Log.Fatalf("failed to load AWS config: %v", err)
		}
		sink = &notifier.SNSSink{Client: sns.NewFromConfig(cfg), TopicArn: topicArn}
	} else {
		logging.Log.Warn("NOTIFIER: SNS_TOPIC_ARN not set, notifications go to the log")
	}

	n := notifier.New(sink, viper.GetString("notifier.eventName"), viper.GetString("notifier.portalUrl"))
	lambda.Start(n.Handle)
}
