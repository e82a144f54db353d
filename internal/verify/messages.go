package verify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daidr/mcverify-go/internal/chat"
	"github.com/daidr/mcverify-go/internal/mcdata"
)

// Everything the player ever reads lives here. Formatting is done with
// legacy codes so the same strings render identically on every version
// in the window.

// announcePrefix is the server name vanilla renders in brackets in
// front of broadcast messages.
var announcePrefix = chat.Text(chat.Gold + chat.Bold + "MC " + chat.DarkGreen + chat.Bold + "Verify")

// announcement wraps a body in the vanilla broadcast translation so
// clients render it as "[MC Verify] body".
func announcement(body chat.Component) chat.Component {
	return chat.Translate("chat.type.announcement", announcePrefix, body)
}

func msgGreeting(username string) chat.Component {
	return chat.Text(chat.Gold + "Hi, " + username + "! Welcome to the account verification server.")
}

func msgInstructions() chat.Component {
	return chat.Text(chat.White + "This server only checks who you are. You will be disconnected automatically once verification finishes.")
}

func msgKeybindHint() chat.Component {
	return chat.Group(
		chat.Text(chat.White+"Press "),
		chat.Keybinding("key.chat"),
		chat.Text(chat.White+" to open chat, then click the link below."),
	)
}

func msgBindLink(endpoint string, code int64, playerID uuid.UUID) chat.Component {
	url := fmt.Sprintf("%s/verify/%d/%s", endpoint, code, playerID)
	return chat.Group(
		chat.Text(chat.Green+"Click here to bind your account: "),
		chat.Link(chat.Yellow+chat.Underline+url, url),
	)
}

func msgAlreadyVerified() chat.Component {
	return chat.Text(chat.Green + "This account is already verified. Nothing to do here!")
}

func msgVerified() chat.Component {
	return chat.Text(chat.Green + "Verification complete. Your account is now bound.")
}

func msgRejected() chat.Component {
	return chat.Text(chat.Red + "Verification was rejected. If this is a mistake, rejoin and try again.")
}

func msgTimedOut() chat.Component {
	return chat.Text(chat.DarkRed + chat.Bold + "Verification timed out.\n" +
		chat.Gold + chat.Bold + "Rejoin the server to get a fresh code.")
}

func msgAuthFailed() chat.Component {
	return chat.Text(chat.Red + "Failed to verify your Minecraft session. Restart your game and try again.")
}

func msgServerClosing() chat.Component {
	return chat.Text(chat.Red + "The verification server is shutting down. Please rejoin later.")
}

func msgOracleError() chat.Component {
	return chat.Text(chat.Red + "Something went wrong on our side. Please rejoin and try again.")
}

// friendlyDuration renders the remaining window as "4m 59s", falling
// back to bare seconds once a minute or less is left.
func friendlyDuration(remaining time.Duration) string {
	total := int(remaining.Round(time.Second) / time.Second)
	if total <= 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

// countdownTier mirrors the boss bar color thresholds so the caption
// and the bar change color together.
func countdownTier(progress float32) string {
	switch {
	case progress >= 0.7:
		return chat.Green
	case progress >= 0.3:
		return chat.Yellow
	default:
		return chat.Red
	}
}

// msgCountdown renders the boss bar caption with the remaining time in
// the current tier's color.
func msgCountdown(remaining time.Duration, progress float32) chat.Component {
	if remaining < 0 {
		remaining = 0
	}
	return chat.Text(fmt.Sprintf("%sCode expires in %s%s%s%s",
		chat.White, countdownTier(progress), chat.Bold, friendlyDuration(remaining), chat.Reset))
}

// versionGateHint is the server-list line shown under the MOTD when
// the pinging client would not make it through the login gate.
func versionGateHint(support mcdata.Support) string {
	verRange := mcdata.Name(mcdata.MinProtocol) + " - " + mcdata.Name(mcdata.MaxProtocol)
	switch support {
	case mcdata.TooOld:
		return chat.Red + chat.Bold + "Your game version is too old. Supported: " + verRange + "."
	case mcdata.TooNewSnapshot:
		return chat.Red + chat.Bold + "Snapshot versions are not supported."
	default:
		return chat.Red + chat.Bold + "Your game version is too new. Supported: " + verRange + "."
	}
}

// rejectionMessage is the login disconnect reason for clients outside
// the supported version window.
func rejectionMessage(support mcdata.Support) chat.Component {
	verRange := mcdata.Name(mcdata.MinProtocol) + " - " + mcdata.Name(mcdata.MaxProtocol)
	switch support {
	case mcdata.TooOld:
		return chat.Text(chat.Red + "Your game version is too old. Please use " + verRange + ".")
	case mcdata.TooNewSnapshot:
		return chat.Text(chat.Red + "Snapshot versions are not supported. Please use a release between " + verRange + ".")
	default:
		return chat.Text(chat.Red + "Your game version is too new. Please use " + verRange + ".")
	}
}
