package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

var (
	serverURL     = flag.String("server", "http://localhost:3000/alexa", "Skill endpoint URL")
	applicationID = flag.String("app-id", "amzn1.ask.skill.simulator", "Skill application id")
	userID        = flag.String("user", "amzn1.ask.account.simulator", "Customer user id")
	apiEndpoint   = flag.String("api-endpoint", "https://api.amazonalexa.com", "Alexa API endpoint sent in requests")
	accessToken   = flag.String("token", "", "API access token sent in requests")
	locale        = flag.String("locale", "en-US", "Request locale")
	interactive   = flag.Bool("interactive", false, "Enable interactive mode")
	verbose       = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sim := NewSimulator(&SimulatorConfig{
		ServerURL:     *serverURL,
		ApplicationID: *applicationID,
		UserID:        *userID,
		APIEndpoint:   *apiEndpoint,
		AccessToken:   *accessToken,
		Locale:        *locale,
	}, logger)

	if *interactive {
		runInteractiveMode(sim)
		return
	}

	// Without interactive mode, run a command given as arguments.
	if err := sim.Run(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInteractiveMode(sim *Simulator) {
	fmt.Println("\nSkill Device Simulator - Interactive Mode")
	fmt.Println("=========================================")
	fmt.Println("Commands:")
	fmt.Println("  launch                  - Open the skill")
	fmt.Println("  intent <name>           - Send an intent request")
	fmt.Println("  book <date> <time>      - Invoke MakeAppointment")
	fmt.Println("  end <text> [consent]    - Send CustomEndSession (consent=1 adds the card)")
	fmt.Println("  close [reason]          - Send SessionEndedRequest")
	fmt.Println("  quit                    - Exit simulator")
	fmt.Println("")

	sim.RunInteractive()
}
