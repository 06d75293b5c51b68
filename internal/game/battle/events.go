package battle

import (
	"time"

	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
)

// Event is an outbound notification. The network layer decides how to encode it.
type Event interface {
	EventName() string
}

// Notifier delivers events to a connected user.
type Notifier interface {
	Notify(user string, ev Event)
}

// Lobby lists users currently looking at the battle-select screen.
type Lobby interface {
	BattleSelectUsers() []string
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(user string, ev Event)

func (f NotifierFunc) Notify(user string, ev Event) { f(user, ev) }

type noopNotifier struct{}

func (noopNotifier) Notify(string, Event) {}

type noLobby struct{}

func (noLobby) BattleSelectUsers() []string { return nil }

// --- tank lifecycle ---

type PrepareToSpawn struct {
	Tank        string
	Position    model.Vector3
	Orientation model.Orientation
}

type SpawnTank struct {
	Tank          string
	Team          model.Team
	Position      model.Vector3
	Orientation   model.Orientation
	Health        int
	Incarnation   int
	Specification garage.Specification
}

type ActivateTank struct {
	Tank string
}

type ChangeHealth struct {
	Tank   string
	Health int
}

// KillLocalTank is sent to the owner of a destroyed tank.
type KillLocalTank struct {
	RespawnDelay time.Duration
}

type KillTank struct {
	Tank   string
	Killer string
}

// SelfDestructTank is broadcast when a tank destroys itself. Silent kills
// (restart, forced removal) carry no kill-feed entry.
type SelfDestructTank struct {
	Tank   string
	Silent bool
}

type DamageTank struct {
	Target string
	Damage float64
	Type   DamageType
}

type ChangeSpecification struct {
	Tank          string
	Specification garage.Specification
}

type EffectActivated struct {
	Tank     string
	Effect   EffectKind
	Duration time.Duration
}

type EffectDeactivated struct {
	Tank   string
	Effect EffectKind
}

// --- movement ---

type MoveTank struct {
	Tank        string
	Position    model.Vector3
	Orientation model.Orientation
	Control     int
}

type RotateTurret struct {
	Tank    string
	Angle   float64
	Control int
}

type MovementControl struct {
	Tank    string
	Control int
}

// --- roster and scoring ---

type UserStat struct {
	User   string
	Team   model.Team
	Score  int
	Kills  int
	Deaths int
}

type InitBattle struct {
	BattleID   string
	Mode       model.Mode
	MapID      string
	ScoreLimit int
	TimeLimit  time.Duration
	TimeLeft   time.Duration
	Spectator  bool
}

type InitStatistics struct {
	Users []UserStat
}

type InitTeamStatistics struct {
	Red   int
	Blue  int
	Users []UserStat
}

type PlayerJoined struct {
	Stat UserStat
}

type PlayerLeft struct {
	User string
	Team model.Team
}

type UserStatChanged struct {
	Stat UserStat
}

type TeamScoreChanged struct {
	Team  model.Team
	Score int
}

// UpdatePlayerKills goes to battle-select users so battle lists stay current.
type UpdatePlayerKills struct {
	BattleID string
	User     string
	Kills    int
}

type FinishBattle struct {
	TimeToRestart time.Duration
	Standings     []UserStat
}

type RestartBattle struct {
	TimeLimit time.Duration
}

// --- CTF ---

type InitFlags struct {
	Red  FlagView
	Blue FlagView
}

type FlagView struct {
	Pedestal model.Vector3
	Position *model.Vector3
	Carrier  string
}

type FlagCaptured struct {
	Team    model.Team
	Carrier string
}

type FlagDropped struct {
	Team     model.Team
	Position model.Vector3
}

type FlagDelivered struct {
	Team      model.Team
	Deliverer string
}

type FlagReturned struct {
	Team model.Team
	// By is empty for auto-return.
	By string
}

// --- CP ---

type InitControlPoints struct {
	Points []ControlPointView
}

type ControlPointView struct {
	Name     string
	Position model.Vector3
	Radius   float64
	Owner    model.Team
	Progress float64
}

type ControlPointProgress struct {
	Point    string
	Progress float64
}

type ControlPointCaptured struct {
	Point string
	Team  model.Team
}

type ControlPointLost struct {
	Point string
	Team  model.Team
}

// --- mines ---

type MinePlaced struct {
	Key      string
	Owner    string
	Position model.Vector3
}

type MineTriggered struct {
	Key    string
	Target string
}

type MinesRemoved struct {
	Owner string
}

func (PrepareToSpawn) EventName() string       { return "prepare_to_spawn" }
func (SpawnTank) EventName() string            { return "spawn_tank" }
func (ActivateTank) EventName() string         { return "activate_tank" }
func (ChangeHealth) EventName() string         { return "change_health" }
func (KillLocalTank) EventName() string        { return "kill_local_tank" }
func (KillTank) EventName() string             { return "kill_tank" }
func (SelfDestructTank) EventName() string     { return "self_destruct_tank" }
func (DamageTank) EventName() string           { return "damage_tank" }
func (ChangeSpecification) EventName() string  { return "change_specification" }
func (EffectActivated) EventName() string      { return "effect_activated" }
func (EffectDeactivated) EventName() string    { return "effect_deactivated" }
func (MoveTank) EventName() string             { return "move_tank" }
func (RotateTurret) EventName() string         { return "rotate_turret" }
func (MovementControl) EventName() string      { return "movement_control" }
func (InitBattle) EventName() string           { return "init_battle" }
func (InitStatistics) EventName() string       { return "init_statistics" }
func (InitTeamStatistics) EventName() string   { return "init_team_statistics" }
func (PlayerJoined) EventName() string         { return "player_joined" }
func (PlayerLeft) EventName() string           { return "player_left" }
func (UserStatChanged) EventName() string      { return "user_stat_changed" }
func (TeamScoreChanged) EventName() string     { return "team_score_changed" }
func (UpdatePlayerKills) EventName() string    { return "update_player_kills" }
func (FinishBattle) EventName() string         { return "finish_battle" }
func (RestartBattle) EventName() string        { return "restart_battle" }
func (InitFlags) EventName() string            { return "init_flags" }
func (FlagCaptured) EventName() string         { return "flag_captured" }
func (FlagDropped) EventName() string          { return "flag_dropped" }
func (FlagDelivered) EventName() string        { return "flag_delivered" }
func (FlagReturned) EventName() string         { return "flag_returned" }
func (InitControlPoints) EventName() string    { return "init_control_points" }
func (ControlPointProgress) EventName() string { return "control_point_progress" }
func (ControlPointCaptured) EventName() string { return "control_point_captured" }
func (ControlPointLost) EventName() string     { return "control_point_lost" }
func (MinePlaced) EventName() string           { return "mine_placed" }
func (MineTriggered) EventName() string        { return "mine_triggered" }
func (MinesRemoved) EventName() string         { return "mines_removed" }
