// Package options combines a command line flag parser with the typed
// settings it fills in.
//
// Options embeds Values, one field per option every command shares, plus an
// Extra map for command specific keys. Flags are declared with On and OnTail;
// each flag carries a handler that receives the raw argument and stores the
// final value, usually through ValidateAndSet so that per-key hooks can
// validate and transform it first:
//
//	o := options.New("link")
//	o.Hook(options.KeyUsers, resolveUsers)
//	o.On("u", "users", "a,b,c", "Usernames or UIDs", func(raw string) error {
//	    return o.ValidateAndSet(options.KeyUsers, splitIDs(raw))
//	})
//	rest, err := o.Parse(args)
//
// Parse is transactional: if a handler or the flag engine fails, Values is
// restored to what it was before Parse started.
package options
