package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

var errUsage = errors.New("usage: launch | intent <name> | book <date> <time> | end <text> [consent] | close [reason]")

// SimulatorConfig holds the simulator configuration
type SimulatorConfig struct {
	ServerURL     string
	ApplicationID string
	UserID        string
	APIEndpoint   string
	AccessToken   string
	Locale        string
}

// Simulator plays the part of a voice device talking to the skill endpoint.
// It keeps one session open across requests until the skill ends it.
type Simulator struct {
	config    *SimulatorConfig
	client    *fasthttp.Client
	log       *zap.Logger
	sessionID string
	attrs     map[string]interface{}
}

func NewSimulator(config *SimulatorConfig, log *zap.Logger) *Simulator {
	return &Simulator{
		config: config,
		client: &fasthttp.Client{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Run executes one command and prints the spoken answer.
func (s *Simulator) Run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	req, err := s.buildRequest(args[0], args[1:])
	if err != nil {
		return err
	}
	resp, err := s.send(req)
	if err != nil {
		return err
	}
	printResponse(resp)
	return nil
}

func (s *Simulator) buildRequest(cmd string, args []string) (*domain.RequestEnvelope, error) {
	switch cmd {
	case "launch":
		return s.envelope(&domain.Request{Type: domain.RequestTypeLaunch}), nil

	case "intent":
		if len(args) < 1 {
			return nil, errUsage
		}
		return s.envelope(&domain.Request{
			Type:   domain.RequestTypeIntent,
			Intent: &domain.Intent{Name: args[0]},
		}), nil

	case "book":
		if len(args) < 2 {
			return nil, errUsage
		}
		return s.envelope(&domain.Request{
			Type: domain.RequestTypeAPIInvoked,
			APIRequest: &domain.APIRequest{
				Name:      "MakeAppointment",
				Arguments: map[string]interface{}{"date": args[0], "time": args[1]},
			},
		}), nil

	case "end":
		if len(args) < 1 {
			return nil, errUsage
		}
		slots := map[string]*domain.Slot{"data": {Name: "data", Value: args[0]}}
		if len(args) > 1 {
			slots["consentCard"] = &domain.Slot{Name: "consentCard", Value: args[1]}
		}
		return s.envelope(&domain.Request{
			Type:   domain.RequestTypeIntent,
			Intent: &domain.Intent{Name: "CustomEndSession", Slots: slots},
		}), nil

	case "close":
		reason := "USER_INITIATED"
		if len(args) > 0 {
			reason = args[0]
		}
		return s.envelope(&domain.Request{Type: domain.RequestTypeSessionEnded, Reason: reason}), nil
	}
	return nil, fmt.Errorf("unknown command %q: %w", cmd, errUsage)
}

func (s *Simulator) envelope(req *domain.Request) *domain.RequestEnvelope {
	isNew := s.sessionID == ""
	if isNew {
		s.sessionID = "amzn1.echo-api.session." + uuid.NewString()
	}
	req.RequestID = "amzn1.echo-api.request." + uuid.NewString()
	req.Timestamp = time.Now().UTC().Format(time.RFC3339)
	req.Locale = s.config.Locale

	app := &domain.Application{ApplicationID: s.config.ApplicationID}
	user := &domain.User{UserID: s.config.UserID}
	return &domain.RequestEnvelope{
		Version: "1.0",
		Session: &domain.Session{
			New:         isNew,
			SessionID:   s.sessionID,
			Application: app,
			User:        user,
			Attributes:  s.attrs,
		},
		Context: &domain.Context{
			System: &domain.System{
				Application:    app,
				User:           user,
				APIEndpoint:    s.config.APIEndpoint,
				APIAccessToken: s.config.AccessToken,
			},
		},
		Request: req,
	}
}

func (s *Simulator) send(env *domain.RequestEnvelope) (*domain.ResponseEnvelope, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.config.ServerURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	s.log.Debug("Sending skill request",
		zap.String("type", string(env.Type())),
		zap.String("request_id", env.RequestID()),
	)

	if err := s.client.Do(req, resp); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("skill returned %d: %s", resp.StatusCode(), resp.Body())
	}

	var out domain.ResponseEnvelope
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	s.track(env, &out)
	return &out, nil
}

// track carries session attributes forward and forgets the session once it ends.
func (s *Simulator) track(env *domain.RequestEnvelope, resp *domain.ResponseEnvelope) {
	s.attrs = resp.SessionAttributes
	if resp.EndsSession() || env.Type() == domain.RequestTypeSessionEnded {
		s.sessionID = ""
		s.attrs = nil
	}
}

func printResponse(resp *domain.ResponseEnvelope) {
	if text := resp.SpeechText(); text != "" {
		fmt.Printf("Skill: %s\n", text)
	}
	if text := resp.RepromptText(); text != "" {
		fmt.Printf("Reprompt: %s\n", text)
	}
	if resp.Response != nil && resp.Response.Card != nil {
		fmt.Printf("Card: %s %v\n", resp.Response.Card.Type, resp.Response.Card.Permissions)
	}
	if resp.Response != nil && resp.Response.APIResponse != nil {
		data, _ := json.Marshal(resp.Response.APIResponse)
		fmt.Printf("API response: %s\n", data)
	}
	if resp.EndsSession() {
		fmt.Println("(session ended)")
	}
}

func (s *Simulator) RunInteractive() {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")

	for scanner.Scan() {
		parts := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(parts) == 0 {
			fmt.Print("> ")
			continue
		}

		switch parts[0] {
		case "quit", "exit":
			fmt.Println("Goodbye!")
			return
		default:
			if err := s.Run(parts); err != nil {
				fmt.Println(err)
			}
		}

		fmt.Print("> ")
	}
}
