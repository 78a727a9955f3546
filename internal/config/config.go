// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 0.06
	TicksPerSec  = 60
	FixedStep    = 1.0 / TicksPerSec

	// Мир измеряется в тех же единицах, что и путь в файлах уровней
	WorldScale   = 48.0 // пикселей на единицу мира
	WorldOffsetX = 120.0
	WorldOffsetY = 160.0

	VillageMaxHealth   = 100
	WaveDelay          = 2.0 // пауза между волнами, сек
	SpawnDelay         = 1.0 // пауза между врагами внутри волны
	OutcomeSettleDelay = 1.0 // задержка перед объявлением исхода уровня
	ArrivalEpsilon     = 0.1
	ArrivalDamage      = 10 // урон за каждого дошедшего врага (политика per_arrival)

	EnemyHealth     = 3
	EnemySpeed      = 2.0
	EnemyGoldReward = 10
	EnemyRadius     = 0.3

	InitialGold       = 75
	SlotCostStep      = 50 // слот N стоит N*50
	DamageUpgradeCost = 60
	DamageUpgradeStep = 0.25

	UnitRange          = 5.0
	UnitCooldown       = 1.0
	UnitDamage         = 1
	UnitRadius         = 0.35
	BulletSpeed        = 5.0
	BulletLifetime     = 5.0
	BulletRadius       = 0.1
	BulletHitRadius    = 0.2
	DamageFlashSeconds = 0.15
	FadeSeconds        = 0.3

	ClickCooldown    = 300 // мс
	IndicatorRadius  = 15
	IndicatorOffsetX = 40
	ButtonSize       = 14
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	PathColor        = color.RGBA{150, 120, 70, 255}
	EntryColor       = color.RGBA{0, 255, 0, 255}
	ExitColor        = color.RGBA{255, 0, 0, 255}
	EnemyColor       = color.RGBA{200, 60, 60, 255}
	FlashColor       = color.RGBA{255, 255, 255, 255}
	ProjectileColor  = color.RGBA{255, 215, 0, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	IdleStateColor   = color.RGBA{70, 130, 180, 220}
	WaveStateColor   = color.RGBA{220, 60, 60, 220}
	WonStateColor    = color.RGBA{50, 205, 50, 255}
	HealthFullColor  = color.RGBA{50, 100, 255, 255}
	HealthHalfColor  = color.RGBA{255, 50, 50, 255}
	HealthEmptyColor = color.RGBA{0, 0, 0, 255}
	PauseButtonColor = color.RGBA{70, 130, 180, 220}
	PlayButtonColor  = color.RGBA{50, 205, 50, 220}
	PauseOverlay     = color.RGBA{0, 0, 0, 128}
	InvalidSpotColor = color.RGBA{255, 60, 60, 120}
	ValidSpotColor   = color.RGBA{60, 255, 60, 120}
	UnitColors       = []color.RGBA{
		{50, 255, 50, 255},  // слот 1
		{50, 100, 255, 255}, // слот 2
		{180, 50, 230, 255}, // слот 3
	}
	SpeedButtonColors = []color.RGBA{
		{70, 130, 180, 220},  // x1
		{220, 60, 60, 220},   // x2
		{194, 178, 128, 255}, // x4
	}
	SpeedMultipliers = []float64{1, 2, 4}
)
