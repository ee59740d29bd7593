package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mderasse/go-bopi/internal/bopi"
)

// RenderSensorsState returns a framed, styled rendering of the sensor
// state for terminal display.
func RenderSensorsState(state *bopi.SensorsState) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("BOPI SENSOR STATE"))
	b.WriteString("\n\n")

	b.WriteString(renderRow("pH value", fmt.Sprintf("%.2f", state.PhValue)))
	b.WriteString(renderRow("Redox", fmt.Sprintf("%.0f mV", state.RedoxValue)))
	b.WriteString(renderTemperature("Water temp", state.WaterTemperature))
	b.WriteString(renderTemperature("Box temp", state.BoxTemperature))
	b.WriteString(renderRow("Box humidity", fmt.Sprintf("%.0f %%", state.BoxHumidity)))
	b.WriteString(renderRow("Uptime", formatUptime(state.Uptime)))

	return BoxStyle.Width(TerminalWidth()).Render(strings.TrimRight(b.String(), "\n"))
}

// RenderError returns a styled error line
func RenderError(err error) string {
	return ErrStyle.Render("Error: " + err.Error())
}

func renderRow(label, value string) string {
	return fmt.Sprintf("%s %s\n",
		LabelStyle.Render(fmt.Sprintf("%-14s", label+":")),
		ValueStyle.Render(value))
}

func renderTemperature(label string, value *float64) string {
	if value == nil {
		return fmt.Sprintf("%s %s\n",
			LabelStyle.Render(fmt.Sprintf("%-14s", label+":")),
			DisconnectedStyle.Render("disconnected"))
	}
	return renderRow(label, fmt.Sprintf("%.1f °C", *value))
}

// formatUptime renders seconds as a compact "3d 2h 5m" style duration
func formatUptime(seconds int64) string {
	d := time.Duration(seconds) * time.Second

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
