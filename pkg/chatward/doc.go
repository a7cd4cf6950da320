/*
Package chatward implements a chat moderation engine driven by an
embedded filter expression language.

# Overview

chatward keeps one Session per chat. A session owns the chat's state:
a message filter (an expression that must evaluate to a bool), typed
settings, and user-defined variables. Incoming messages are either
commands (handled directly) or ordinary messages (evaluated against
the filter). Handling a message yields a list of Updates for the host
transport to apply: replies to send and messages to delete.

The expression language lives in the expr subpackage; source text is
turned into trees by the parser subpackage; chat state is persisted
through the store subpackage.

# Basic Usage

Create a Manager and feed it messages:

	mgr := chatward.New("guardbot",
	    chatward.WithStore(st),
	    chatward.WithLogger(logger),
	)
	defer mgr.Close()

	updates, err := mgr.HandleMessage(ctx, chatID, msg, fromAdmin)
	for _, u := range updates {
	    switch u := u.(type) {
	    case chatward.ReplyUpdate:
	        // send u.Text to the chat
	    case chatward.DeleteUpdate:
	        // delete message u.MessageID
	    }
	}

Filters are set per chat with the /set_filter command:

	/set_filter has_sticker or (has_text and text matches "(?i)spam")

Every variable derived from the incoming message (sender, forward
origin, media flags, text, caption) is visible to the filter, plus any
user variables set with /set_variable.
*/
package chatward
