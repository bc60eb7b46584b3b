package team

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/roborush/portal/internal/problem"
)

// TeamRepository defines the interface for team data operations.
type TeamRepository interface {
	CreateTeam(t *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeamByName(name string) (*Team, error)
	GetTeamByInviteCode(code string) (*Team, error)
	GetTeamByMemberUserID(userID uint) (*Team, error)
	GetAllTeams() ([]Team, error)
	UpdateTeam(t *Team) error
	DeleteTeamCascade(teamID uint) error

	AddMember(m *TeamMember) error
	RemoveMember(teamID, userID uint) error

	NextTeamCode() (string, error)
	GenerateInviteCode() (string, error)
	ProblemExists(id uint) (bool, error)

	ListWinners() ([]Team, error)

	WithTransaction(txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// preloaded returns a query with members in join order and the selected
// problem populated.
func (r *teamRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("team_members.id asc")
		}).
		Preload("Problem")
}

func (r *teamRepository) CreateTeam(t *Team) error {
	return r.db.Create(t).Error
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var t Team
	if err := r.preloaded().First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) GetTeamByName(name string) (*Team, error) {
	var t Team
	if err := r.preloaded().Where("name = ?", name).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) GetTeamByInviteCode(code string) (*Team, error) {
	var t Team
	if err := r.preloaded().Where("invite_code = ?", code).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) GetTeamByMemberUserID(userID uint) (*Team, error) {
	var member TeamMember
	if err := r.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.GetTeamByID(member.TeamID)
}

func (r *teamRepository) GetAllTeams() ([]Team, error) {
	var teams []Team
	if err := r.preloaded().Order("created_at asc").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) UpdateTeam(t *Team) error {
	return r.db.Omit("Members", "Problem").Save(t).Error
}

// DeleteTeamCascade removes a team, its memberships and its submissions.
// Submissions are deleted by table to avoid an import cycle with the
// submission package.
func (r *teamRepository) DeleteTeamCascade(teamID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM submissions WHERE team_id = ?", teamID).Error; err != nil {
			return err
		}
		return tx.Delete(&Team{}, teamID).Error
	})
}

func (r *teamRepository) AddMember(m *TeamMember) error {
	return r.db.Create(m).Error
}

func (r *teamRepository) RemoveMember(teamID, userID uint) error {
	return r.db.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&TeamMember{}).Error
}

// NextTeamCode atomically increments the tag counter and formats the new
// sequence as an RB-prefixed code. The row-level lock taken by the UPDATE
// serializes concurrent creates, so codes are never handed out twice.
func (r *teamRepository) NextTeamCode() (string, error) {
	var counter TeamTagCounter
	if err := r.db.Where(TeamTagCounter{ID: 1}).FirstOrCreate(&counter).Error; err != nil {
		return "", err
	}
	if err := r.db.Model(&TeamTagCounter{}).
		Where("id = ?", 1).
		Update("next_seq", gorm.Expr("next_seq + 1")).Error; err != nil {
		return "", err
	}
	if err := r.db.First(&counter, 1).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("RB%02d", counter.NextSeq), nil
}

// GenerateInviteCode produces a short random token, retrying on the rare
// collision with an existing team.
func (r *teamRepository) GenerateInviteCode() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		buf := make([]byte, 3)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		code := strings.ToUpper(hex.EncodeToString(buf))

		var count int64
		if err := r.db.Model(&Team{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique invite code")
}

func (r *teamRepository) ProblemExists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&problem.Problem{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *teamRepository) ListWinners() ([]Team, error) {
	var teams []Team
	if err := r.preloaded().
		Where("winning_rank > 0").
		Order("winning_rank asc").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&teamRepository{db: tx})
	})
}
