package emails

import (
	"fmt"
	"html"
	"strings"
	"time"
)

const (
	themePrimary = "#1D4ED8"
	themeBgBody  = "#F3F4F6"
)

// EmailLayout wraps notification content in the shared BMS Academy HTML shell.
func EmailLayout(contentHTML string) string {
	year := time.Now().Year()
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>BMS Academy</title>
  <style>
    body { margin: 0; padding: 0; background-color: %s; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
    .header { background-color: %s; padding: 24px; text-align: center; }
    .header h1 { color: #FFFFFF; margin: 0; font-size: 22px; letter-spacing: 1px; }
    .content { padding: 32px; color: #1F2937; line-height: 1.6; }
    .content h2 { margin-top: 0; color: #111827; }
    .footer { padding: 20px; text-align: center; font-size: 12px; color: #6B7280; border-top: 1px solid #E5E7EB; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>BMS ACADEMY</h1></div>
    <div class="content">%s</div>
    <div class="footer">&copy; %d BMS Academy. All rights reserved.</div>
  </div>
</body>
</html>`, themeBgBody, themePrimary, contentHTML, year)
}

// EscapeHTML escapes user-submitted text before interpolation into templates.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// nl2br converts newlines in free-form messages to <br> for the HTML body.
func nl2br(s string) string {
	return strings.ReplaceAll(EscapeHTML(s), "\n", "<br>")
}
