package main

import (
	"log"

	"lodgebot/core/bootstrap"
	corecmd "lodgebot/core/cmd"
	coreconfig "lodgebot/core/config"
	"lodgebot/core/server"
	"lodgebot/core/whatsapp"
	"lodgebot/core/whatsapp/sender"
	"lodgebot/internal/conversation"
	"lodgebot/internal/listing"
	"lodgebot/internal/store/redis"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		Build:             build,
	})
	if err != nil {
		log.Fatalf("lodgebot: %v", err)
	}
}

func build(cfg *coreconfig.Config) (*corecmd.App, error) {
	infra, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}

	disp := sender.NewDispatcher(sender.Options{})
	gateway, err := whatsapp.NewGateway(whatsapp.Config{
		Token:        cfg.WhatsApp.Token,
		PhoneID:      cfg.WhatsApp.PhoneID,
		GraphBaseURL: cfg.WhatsApp.GraphBaseURL,
	}, whatsapp.WithDispatcher(disp))
	if err != nil {
		disp.Close()
		_ = infra.Close()
		return nil, err
	}

	sessions := redis.NewSessions(infra.Redis, cfg.Redis.SessionTTL)
	dedup := redis.NewDedup(infra.Redis, cfg.Redis.DedupTTL)
	engine := conversation.NewEngine(sessions, dedup)

	srvOpts := []server.Option{
		server.WithLocker(redis.NewLocker(infra.Redis)),
	}
	if infra.DB != nil {
		srvOpts = append(srvOpts, server.WithArchiver(listing.NewRepo(infra.DB)))
	}
	srv := server.New(server.Config{
		VerifyToken: cfg.WhatsApp.VerifyToken,
		OwnerPhone:  cfg.WhatsApp.OwnerPhone,
	}, engine, gateway, srvOpts...)

	return &corecmd.App{
		Handler: srv.Router(),
		Cleanup: func() error {
			disp.Close()
			return infra.Close()
		},
	}, nil
}
