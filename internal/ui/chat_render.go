package ui

import (
	"bytes"
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/huddle/internal/domain"
)

// Compiled regex patterns for inline formatting
var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(currentTheme.ChromaStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// renderInlineMarkdown applies bold, code and link formatting to a line
func renderInlineMarkdown(line string) string {
	// Protect code spans from other formatting
	var codeSpans []string
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		code := inlineCodePattern.FindStringSubmatch(match)[1]
		codeSpans = append(codeSpans, ChatCodeBlockStyle.Render(code))
		return "\x00"
	})

	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		text := boldPattern.FindStringSubmatch(match)[1]
		return lipgloss.NewStyle().Bold(true).Render(text)
	})

	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		link := lipgloss.NewStyle().Foreground(ColorInfo).Underline(true)
		return link.Render(parts[1]) + " (" + parts[2] + ")"
	})

	for _, span := range codeSpans {
		line = strings.Replace(line, "\x00", span, 1)
	}
	return line
}

// wrapText wraps text to the specified width, handling ANSI escape codes
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// renderMessageText renders a message body. Fenced code is highlighted,
// everything else is wrapped to width.
func renderMessageText(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result []string
	inCodeBlock := false
	codeBlockLang := ""
	var codeBlockContent strings.Builder

	flushCode := func() {
		highlighted := highlightCode(codeBlockContent.String(), codeBlockLang)
		for _, line := range strings.Split(highlighted, "\n") {
			result = append(result, "  "+ansi.Truncate(line, width-2, "…"))
		}
		codeBlockLang = ""
		codeBlockContent.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
			} else {
				inCodeBlock = false
				flushCode()
			}
			continue
		}

		if inCodeBlock {
			if codeBlockContent.Len() > 0 {
				codeBlockContent.WriteString("\n")
			}
			codeBlockContent.WriteString(line)
			continue
		}
		result = append(result, wrapText(renderInlineMarkdown(line), width))
	}

	// An unterminated fence still shows its code
	if inCodeBlock {
		flushCode()
	}

	return strings.Join(result, "\n")
}

// renderMessage renders the sender line and body of one message.
func renderMessage(m domain.Message, width int) string {
	nameStyle := ChatPeerStyle
	name := m.FromName
	if m.Own {
		nameStyle = ChatOwnStyle
		name = "You"
	}
	if name == "" {
		name = m.From.String()
	}

	header := nameStyle.Render(name)
	if !m.Sent.IsZero() {
		header += " " + ChatTimeStyle.Render(m.Sent.Local().Format("15:04"))
	}
	body := ChatMessageStyle.Render(renderMessageText(strings.TrimRight(m.Text, "\n"), width))
	return header + "\n" + body
}

// renderEmptyChat is the placeholder of a chat without messages.
func renderEmptyChat() string {
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(ChatEmptyStyle.Render("No messages yet."))
	sb.WriteString("\n\n")
	sb.WriteString(ChatEmptyStyle.Render("Type below and press "))
	sb.WriteString(keyStyle.Render("enter"))
	sb.WriteString(ChatEmptyStyle.Render(" to send."))
	return sb.String()
}

// renderNoChatMessage is shown when no chat window is open.
func renderNoChatMessage() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(msgStyle.Italic(true).Render("No chat open"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("To get started:"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("enter"))
	sb.WriteString(msgStyle.Render(" on a contact or chat"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("a"))
	sb.WriteString(msgStyle.Render(" to add a contact"))
	return sb.String()
}
