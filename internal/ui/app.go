package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/appengine-ltd/bundle-forge/internal/bundle"
	"github.com/appengine-ltd/bundle-forge/internal/catalog"
	"github.com/appengine-ltd/bundle-forge/internal/config"
	"github.com/appengine-ltd/bundle-forge/internal/craft"
	"github.com/appengine-ltd/bundle-forge/internal/inventory"
	"github.com/appengine-ltd/bundle-forge/internal/present"
	"github.com/appengine-ltd/bundle-forge/internal/shop"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

const (
	frameInterval = 50 * time.Millisecond
	historySize   = 8
	startingMoney = 5000
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string

	Config  config.Config
	Catalog *catalog.Catalog
	// Sound is an optional extra sink, usually raylib audio.
	Sound present.Sink
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

// Run blocks until the player quits. Menus still open when the program stops are
// shut down so nothing they hold is lost.
func (a *App) Run() error {
	m := newModel(a.cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(model); ok {
		fm.shutdown()
	} else {
		m.shutdown()
	}
	return err
}

type screen int

const (
	screenMenu screen = iota
	screenBundles
	screenStation
	screenShops
	screenShop
)

type menuItem int

const (
	itemBundles menuItem = iota
	itemForge
	itemTailoring
	itemShops
	itemQuit
	menuItemCount
)

var menuLabels = [menuItemCount]string{
	"Community bundles",
	"Forge",
	"Sewing machine",
	"Shops",
	"Quit",
}

// starterKit seeds a fresh save so every menu has something to work with.
var starterKit = []struct {
	id    string
	stack int
}{
	{"(O)24", 7},
	{"(O)190", 3},
	{"(O)192", 5},
	{"(O)428", 3},
	{"(O)766", 4},
	{craft.ShardID, 120},
	{"(W)0", 1},
	{"(O)64", 2},
	{"(O)516", 1},
	{"(O)529", 1},
	{"(C)1000", 1},
	{"(O)145", 2},
}

type model struct {
	cfg    AppConfig
	cat    *catalog.Catalog
	st     *world.State
	areas  []*bundle.Area
	forge  *craft.Forge
	tailor *craft.Tailoring

	sink   present.Sink
	feed   *feed
	logger zerolog.Logger

	screen screen
	idx    int
	slot   int

	page *bundle.Page
	tx   *craft.Transaction
	shop *shop.Ledger

	history []string
	status  string
	last    time.Time
}

func newModel(cfg AppConfig) model {
	logger := log.Logger
	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	size := cfg.Config.InventorySize
	if size < 1 {
		size = config.Default().InventorySize
	}

	f := newFeed(32)
	sink := present.Multi{f, present.NewLog(logger), cfg.Sound}
	st := world.NewState(inventory.New(size), startingMoney)
	for _, kit := range starterKit {
		it, err := cat.Items.Create(kit.id, kit.stack)
		if err != nil {
			logger.Debug().Err(err).Msg("starter item not in catalog")
			continue
		}
		if left := st.Inventory().Add(it); left != nil {
			break
		}
	}

	m := model{
		cfg:    cfg,
		cat:    cat,
		st:     st,
		forge:  craft.NewForge(cat.Items, cfg.Config.Seed),
		tailor: craft.NewTailoring(cat.Items, cat.Tailoring),
		sink:   sink,
		feed:   f,
		logger: logger.With().Str("component", "ui").Logger(),
	}
	m.areas = bundle.Build(cat.Bundles, st, st, m.bundleOpts()...)
	return m
}

func (m model) bundleOpts() []bundle.Option {
	return []bundle.Option{bundle.WithLogger(m.logger), bundle.WithPresenter(m.sink)}
}

func (m model) craftOpts() []craft.Option {
	return []craft.Option{craft.WithLogger(m.logger), craft.WithPresenter(m.sink)}
}

type frameMsg time.Time

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m model) Init() tea.Cmd {
	return frameCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		now := time.Time(msg)
		var elapsed time.Duration
		if !m.last.IsZero() {
			elapsed = now.Sub(m.last)
		}
		m.last = now
		m = m.advance(elapsed)
		return m, frameCmd()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.shutdown()
			return m, tea.Quit
		}
		m.status = ""
		var cmd tea.Cmd
		switch m.screen {
		case screenMenu:
			m, cmd = m.updateMenu(msg)
		case screenBundles:
			m = m.updateBundles(msg)
		case screenStation:
			m = m.updateStation(msg)
		case screenShops:
			m = m.updateShops(msg)
		case screenShop:
			m = m.updateShop(msg)
		}
		m = m.collect()
		return m, cmd
	}
	return m, nil
}

// advance runs one frame of the open menu's countdowns.
func (m model) advance(elapsed time.Duration) model {
	if m.tx != nil && m.tx.Tick(elapsed) {
		m.status = "Done: " + itemLabel(m.st.Held())
	}
	if m.shop != nil {
		m.shop.Tick(elapsed)
	}
	return m.collect()
}

func (m model) collect() model {
	msgs := m.feed.Drain()
	if len(msgs) == 0 {
		return m
	}
	m.history = append(m.history, msgs...)
	if over := len(m.history) - historySize; over > 0 {
		m.history = append([]string(nil), m.history[over:]...)
	}
	return m
}

func (m model) updateMenu(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.idx = (m.idx + int(menuItemCount) - 1) % int(menuItemCount)
	case "down", "j":
		m.idx = (m.idx + 1) % int(menuItemCount)
	case "enter":
		switch menuItem(m.idx) {
		case itemBundles:
			m.screen, m.idx = screenBundles, 0
		case itemForge:
			m.tx = craft.New(m.forge, m.st, m.cfg.Config.Forge.Duration, m.craftOpts()...)
			m.screen = screenStation
		case itemTailoring:
			m.tx = craft.New(m.tailor, m.st, m.cfg.Config.Tailoring.Duration, m.craftOpts()...)
			m.screen = screenStation
		case itemShops:
			m.screen, m.idx = screenShops, 0
		case itemQuit:
			m.shutdown()
			return m, tea.Quit
		}
	}
	return m, nil
}

// updateInventory handles the keys every menu shares. It reports whether the key
// was consumed.
func (m model) updateInventory(msg tea.KeyMsg) (model, bool) {
	n := m.st.Inventory().Len()
	switch msg.String() {
	case "left", "h":
		m.slot = (m.slot + n - 1) % n
	case "right", "l":
		m.slot = (m.slot + 1) % n
	case "x":
		// Swap the cursor item with the selected slot.
		inv := m.st.Inventory()
		held := m.st.Held()
		m.st.SetHeld(inv.Set(m.slot, held))
	default:
		return m, false
	}
	return m, true
}

type bundleRef struct {
	area   *bundle.Area
	bundle *bundle.Bundle
}

func (m model) bundleList() []bundleRef {
	var out []bundleRef
	for _, a := range m.areas {
		for _, b := range a.Bundles {
			out = append(out, bundleRef{area: a, bundle: b})
		}
	}
	return out
}

func (m model) updateBundles(msg tea.KeyMsg) model {
	if next, ok := m.updateInventory(msg); ok {
		return next
	}
	list := m.bundleList()
	switch msg.String() {
	case "esc", "q":
		if m.page != nil {
			m.page.Close()
			m.page = nil
		}
		m.screen, m.idx = screenMenu, int(itemBundles)
	case "up", "k":
		if len(list) > 0 {
			m.idx = (m.idx + len(list) - 1) % len(list)
		}
	case "down", "j":
		if len(list) > 0 {
			m.idx = (m.idx + 1) % len(list)
		}
	case "enter":
		if m.idx >= len(list) {
			return m
		}
		ref := list[m.idx]
		if m.page == nil || m.page.Area() != ref.area {
			if m.page != nil {
				m.page.Close()
			}
			m.page = bundle.NewPage(ref.area, m.st, m.bundleOpts()...)
		}
		m.page.Open(ref.bundle.Index)
	}
	if m.page == nil || m.page.Bundle() == nil {
		return m
	}
	switch msg.String() {
	case "d":
		m.page.DonateFromInventory(m.slot)
	case "D":
		m.page.DonateHeld()
	case "w":
		m.page.WithdrawPartial()
	case "t":
		m.page.TakeOneFromPartial()
	case "p":
		m.page.Purchase()
	}
	return m
}

func (m model) updateStation(msg tea.KeyMsg) model {
	if m.tx == nil {
		m.screen = screenMenu
		return m
	}
	if next, ok := m.updateInventory(msg); ok {
		return next
	}
	switch msg.String() {
	case "esc", "q":
		if !m.tx.Close() {
			m.status = "Wait for the machine to finish."
			return m
		}
		m.tx = nil
		m.screen = screenMenu
	case "1":
		m.tx.PlaceFromInventory(m.slot, craft.Left)
	case "2":
		m.tx.PlaceFromInventory(m.slot, craft.Right)
	case "[":
		m.tx.PlaceHeld(craft.Left)
	case "]":
		m.tx.PlaceHeld(craft.Right)
	case "enter", "c":
		m.tx.Commit()
	case "u":
		m.tx.Unforge()
	}
	return m
}

func (m model) updateShops(msg tea.KeyMsg) model {
	names := m.cat.ShopNames()
	switch msg.String() {
	case "esc", "q":
		m.screen, m.idx = screenMenu, int(itemShops)
	case "up", "k":
		if len(names) > 0 {
			m.idx = (m.idx + len(names) - 1) % len(names)
		}
	case "down", "j":
		if len(names) > 0 {
			m.idx = (m.idx + 1) % len(names)
		}
	case "enter":
		if m.idx >= len(names) {
			return m
		}
		stock, err := m.cat.Stock(names[m.idx])
		if err != nil {
			m.logger.Error().Err(err).Msg("open shop")
			m.status = err.Error()
			return m
		}
		m.shop = shop.New(names[m.idx], stock, m.st, m.st, m.cfg.Config.Shop,
			shop.WithLogger(m.logger),
			shop.WithPresenter(m.sink),
			shop.WithSeed(m.cfg.Config.Seed),
		)
		m.screen, m.idx = screenShop, 0
	}
	return m
}

func (m model) updateShop(msg tea.KeyMsg) model {
	if m.shop == nil {
		m.screen = screenShops
		return m
	}
	if next, ok := m.updateInventory(msg); ok {
		return next
	}
	entries := m.shop.Entries()
	switch msg.String() {
	case "esc", "q":
		m.shop.Close()
		m.shop = nil
		m.screen, m.idx = screenShops, 0
		return m
	case "up", "k":
		if len(entries) > 0 {
			m.idx = (m.idx + len(entries) - 1) % len(entries)
		}
	case "down", "j":
		if len(entries) > 0 {
			m.idx = (m.idx + 1) % len(entries)
		}
	case "enter", "b":
		if m.idx < len(entries) {
			m.shop.Purchase(entries[m.idx], 1)
		}
	case "B":
		if m.idx < len(entries) {
			m.shop.Purchase(entries[m.idx], 5)
		}
	case "s":
		if pay, ok := m.shop.SellFromInventory(m.slot); ok {
			m.status = "Sold for " + money(pay)
		}
	}
	if n := len(m.shop.Entries()); m.idx >= n && n > 0 {
		m.idx = n - 1
	}
	return m
}

// shutdown force-closes every open menu.
func (m model) shutdown() {
	if m.page != nil {
		m.page.EmergencyShutdown()
	}
	if m.tx != nil {
		m.tx.EmergencyShutdown()
	}
	if m.shop != nil {
		m.shop.Close()
	}
	if m.st != nil && m.st.Held() != nil {
		world.RescueHeld(m.st)
	}
	if m.st != nil {
		m.logger.Debug().Str("inventory", m.st.Inventory().Summary()).Int("money", m.st.Money()).Msg("menus closed")
	}
}
