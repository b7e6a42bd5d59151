package draw

// mode is the capability every drawing behavior offers the controller.
type mode interface {
	enable()
	disable()
	setOptions(Options)
}

// modeBase carries what every mode shares: the host surface, the current
// option snapshot and the listeners it subscribed.
type modeBase struct {
	host      Host
	store     *Store
	out       surface
	opts      Options
	active    bool
	listeners map[EventType]ListenerID
}

func newModeBase(host Host, store *Store, opts Options) modeBase {
	return modeBase{
		host:      host,
		store:     store,
		out:       surface{host: host, store: store},
		opts:      opts.snapshot(),
		listeners: make(map[EventType]ListenerID),
	}
}

func (b *modeBase) setOptions(o Options) { b.opts = o.snapshot() }

// listen subscribes h and remembers it so unlisten can drop it again.
func (b *modeBase) listen(t EventType, h Handler) {
	if id, ok := b.listeners[t]; ok {
		b.host.Off(t, id)
	}
	b.listeners[t] = b.host.On(t, h)
}

func (b *modeBase) unlisten() {
	for t, id := range b.listeners {
		b.host.Off(t, id)
	}
	clear(b.listeners)
}

// stampFunc builds the properties of a new feature from the current options.
type stampFunc func(Options) Properties

func solidStamp(m Mode) stampFunc {
	return func(o Options) Properties {
		return Properties{Mode: m, Color: o.color(), Thickness: o.thickness()}
	}
}

func dashedStamp(m Mode) stampFunc {
	return func(o Options) Properties {
		return Properties{Mode: m, Color: o.color(), Thickness: o.thickness(), DashArray: o.dashArray()}
	}
}
