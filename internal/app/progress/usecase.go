package progress

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"frostfire/internal/app/ports"
	"frostfire/internal/domain/survival"
)

const DefaultProfile = "local"

type UseCase struct {
	Repo      ports.ProgressionRepository
	TxManager ports.TxManager
	Profile   string
}

func (u UseCase) profile(p string) string {
	if p = strings.TrimSpace(p); p != "" {
		return p
	}
	if u.Profile != "" {
		return u.Profile
	}
	return DefaultProfile
}

func (u UseCase) Get(ctx context.Context, req Request) (Response, error) {
	profile := u.profile(req.Profile)
	var p survival.Progression
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		p, err = u.load(txCtx, profile)
		return err
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Profile: profile, Progression: p, TotalPlayTime: playTime(p.TotalPlayTime)}, nil
}

// Record folds a finished run into the profile's progression.
func (u UseCase) Record(ctx context.Context, run survival.SaveState) (Response, error) {
	profile := u.profile("")
	var (
		p        survival.Progression
		unlocked []survival.Achievement
	)
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		p, err = u.load(txCtx, profile)
		if err != nil {
			return err
		}
		unlocked = p.RecordRun(run)
		return u.Repo.Put(txCtx, profile, p)
	})
	if err != nil {
		return Response{}, err
	}
	return Response{
		Profile:         profile,
		Progression:     p,
		TotalPlayTime:   playTime(p.TotalPlayTime),
		NewAchievements: unlocked,
	}, nil
}

// RecordRun lets the tick loop report finished runs.
func (u UseCase) RecordRun(ctx context.Context, run survival.SaveState) error {
	_, err := u.Record(ctx, run)
	return err
}

func (u UseCase) load(ctx context.Context, profile string) (survival.Progression, error) {
	p, err := u.Repo.Get(ctx, profile)
	if errors.Is(err, ports.ErrNotFound) {
		return survival.Progression{}, nil
	}
	return p, err
}

func playTime(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	var zero time.Time
	return strings.TrimSpace(humanize.RelTime(zero, zero.Add(d), "", ""))
}
