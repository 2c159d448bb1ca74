package bot

import (
	tg "dropmail/core/telegram"
	"dropmail/core/telegram/commands"
	"dropmail/core/telegram/router"
	"dropmail/core/telegram/state"
)

// Register declares every command, callback and conversation handler on
// the given registry.
func (s *Service) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     s.handleStart,
		Description: "Show your address and the main menu",
	})
	reg.RegisterCommand("/block", commands.Command{
		Handler:     s.handleBlock,
		Description: "Block a user by ID",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/unblock", commands.Command{
		Handler:     s.handleUnblock,
		Description: "Unblock a user by ID",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(cbChooseName, s.cbChooseNameHandler)
	_ = reg.RegisterCallback(cbRandomEmail, s.cbRandomEmailHandler)
	_ = reg.RegisterCallback(cbCopyEmail, s.cbCopyEmailHandler)
	_ = reg.RegisterCallback(cbMyEmails, s.cbMyEmailsHandler)
	_ = reg.RegisterCallback(cbBack, s.cbBackHandler)

	state.RegisterHandler(StateAwaitingName, s.awaitingNameHandler)
	state.RegisterHandler(StateAwaitingBlockTarget, s.awaitingTargetHandler(true))
	state.RegisterHandler(StateAwaitingUnblockTarget, s.awaitingTargetHandler(false))
}

// Routes assembles the transport routes for all registered handlers.
func (s *Service) Routes(reg *tg.Registry) []tg.Route {
	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: s.gate.AdminID(),
	})
	routes = append(routes, router.TextRoutes(s.states, reg, router.TextOptions{
		UnknownText: s.handleUnknownText,
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	return routes
}
