package bot

import (
	"errors"
	"log/slog"

	"dropmail/access"
	"dropmail/core/logger"
	tghelpers "dropmail/core/telegram/helpers"
	"dropmail/core/telegram/state"
	"dropmail/registry"

	tele "gopkg.in/telebot.v4"
)

// Service holds the bot's domain dependencies and implements every chat
// handler.
type Service struct {
	reg    *registry.Registry
	gate   *access.Gate
	states state.Manager
}

func NewService(reg *registry.Registry, gate *access.Gate, states state.Manager) *Service {
	return &Service{reg: reg, gate: gate, states: states}
}

func (s *Service) handleStart(c tele.Context) error {
	s.states.ClearState(c.Sender().ID)
	last, _ := s.reg.LastAddress(c.Sender().ID)
	return tghelpers.SendMDV2(c, textGreeting(last), mainMenu())
}

func (s *Service) cbChooseNameHandler(c tele.Context) error {
	s.states.SetState(c.Sender().ID, StateAwaitingName)
	return tghelpers.EditOrSendMDV2(c, textAskName(), backMenu())
}

func (s *Service) cbRandomEmailHandler(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	addr, err := s.reg.MintRandom(ctx, c.Sender().ID)
	if err != nil {
		logger.Error(ctx, "tg", "mint.random.fail",
			slog.Int64("user_id", c.Sender().ID),
			slog.String("err", err.Error()),
		)
		return tghelpers.EditOrSendMDV2(c, textMintFailed(), mainMenu())
	}
	return tghelpers.EditOrSendMDV2(c, textMinted(addr), mainMenu())
}

func (s *Service) cbCopyEmailHandler(c tele.Context) error {
	last, ok := s.reg.LastAddress(c.Sender().ID)
	if !ok {
		return tghelpers.EditOrSendMDV2(c, textNoAddressYet(), mainMenu())
	}
	return tghelpers.EditOrSendMDV2(c, textCopy(last), mainMenu())
}

func (s *Service) cbMyEmailsHandler(c tele.Context) error {
	addrs := s.reg.Addresses(c.Sender().ID)
	if len(addrs) == 0 {
		return tghelpers.EditOrSendMDV2(c, textNoAddressYet(), mainMenu())
	}
	return tghelpers.EditOrSendMDV2(c, textAddressList(addrs), backMenu())
}

func (s *Service) cbBackHandler(c tele.Context) error {
	s.states.ClearState(c.Sender().ID)
	last, _ := s.reg.LastAddress(c.Sender().ID)
	return tghelpers.EditOrSendMDV2(c, textGreeting(last), mainMenu())
}

// awaitingNameHandler consumes the next text message while the user picks a
// name. Invalid or taken names re-prompt and keep the state so the user can
// just type again; success and internal failures end the conversation.
func (s *Service) awaitingNameHandler(c tele.Context) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)

	addr, err := s.reg.MintNamed(ctx, userID, c.Text())
	switch {
	case errors.Is(err, registry.ErrInvalidName):
		return tghelpers.SendMDV2(c, textInvalidName(), backMenu())
	case errors.Is(err, registry.ErrNameTaken):
		return tghelpers.SendMDV2(c, textNameTaken(), backMenu())
	case err != nil:
		s.states.ClearState(userID)
		logger.Error(ctx, "tg", "mint.named.fail",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendMDV2(c, textMintFailed(), mainMenu())
	}

	s.states.ClearState(userID)
	return tghelpers.SendMDV2(c, textMinted(addr), mainMenu())
}

func (s *Service) handleBlock(c tele.Context) error {
	s.states.SetState(c.Sender().ID, StateAwaitingBlockTarget)
	return tghelpers.SendMDV2(c, textAskBlockTarget())
}

func (s *Service) handleUnblock(c tele.Context) error {
	s.states.SetState(c.Sender().ID, StateAwaitingUnblockTarget)
	return tghelpers.SendMDV2(c, textAskUnblockTarget())
}

// awaitingTargetHandler resolves the admin's next message into a user ID
// and applies the pending block or unblock. Unparsable input re-prompts
// without leaving the state.
func (s *Service) awaitingTargetHandler(block bool) tele.HandlerFunc {
	return func(c tele.Context) error {
		actor := c.Sender().ID
		ctx := tghelpers.BuildContext(c)

		target, ok := access.ParseTargetID(c.Text())
		if !ok {
			return tghelpers.SendMDV2(c, textBadTargetID())
		}
		s.states.ClearState(actor)

		if block {
			if err := s.gate.Block(ctx, actor, target); err != nil {
				logger.Error(ctx, "tg", "admin.block.fail",
					slog.Int64("target_id", target),
					slog.String("err", err.Error()),
				)
				return tghelpers.SendMDV2(c, textAdminActionFailed())
			}
			return tghelpers.SendMDV2(c, textBlocked(target))
		}

		changed, err := s.gate.Unblock(ctx, actor, target)
		if err != nil {
			logger.Error(ctx, "tg", "admin.unblock.fail",
				slog.Int64("target_id", target),
				slog.String("err", err.Error()),
			)
			return tghelpers.SendMDV2(c, textAdminActionFailed())
		}
		if !changed {
			return tghelpers.SendMDV2(c, textWasNotBlocked(target))
		}
		return tghelpers.SendMDV2(c, textUnblocked(target))
	}
}

func (s *Service) handleUnknownText(c tele.Context) error {
	return tghelpers.SendMDV2(c, textUnknown(), mainMenu())
}
