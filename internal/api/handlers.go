package api

import (
	"net/http"

	"github.com/wnt/guiverse/internal/game"
	"github.com/wnt/guiverse/internal/models"
	"github.com/wnt/guiverse/internal/view"
)

// defaultTraining is what the dashboard train button runs
const defaultTraining = "Intelligence Boost"

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.snapshot(w, r); ok {
		WriteSuccess(w, http.StatusOK, snap)
	}
}

func (s *Server) connect(w http.ResponseWriter, r *http.Request) {
	result, err := s.game.Connect(r.Context())
	s.respond(w, r, result, err)
}

func (s *Server) disconnect(w http.ResponseWriter, r *http.Request) {
	result, err := s.game.Disconnect(r.Context())
	s.respond(w, r, result, err)
}

func (s *Server) chainBalance(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	if !snap.Connected {
		s.fail(w, r, "", game.ErrNotConnected)
		return
	}

	balance, err := s.chain.GetBalance(r.Context(), snap.Account)
	if err != nil {
		s.fail(w, r, "", err)
		return
	}
	WriteSuccess(w, http.StatusOK, models.Wallet{
		Connected: true,
		Address:   snap.Account,
		Balance:   balance,
	})
}

type mintRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (s *Server) mintPet(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, game.ActionMint, err)
		return
	}
	result, err := s.game.MintPet(r.Context(), req.Name, req.Type)
	s.respond(w, r, result, err)
}

type trainRequest struct {
	// Program is a training program id or a free-form training name
	Program string `json:"program"`
}

func (s *Server) trainPet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, game.ActionTrain, err)
		return
	}
	var req trainRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, game.ActionTrain, err)
		return
	}

	training := req.Program
	if program, ok := models.FindTrainingProgram(req.Program); ok {
		training = program.Name
	}
	if training == "" {
		training = defaultTraining
	}

	result, err := s.game.TrainPet(r.Context(), id, training)
	s.respond(w, r, result, err)
}

func (s *Server) battlePet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, game.ActionBattle, err)
		return
	}
	result, err := s.game.BattlePet(r.Context(), id)
	s.respond(w, r, result, err)
}

func (s *Server) claimRewards(w http.ResponseWriter, r *http.Request) {
	result, err := s.game.ClaimRewards(r.Context())
	s.respond(w, r, result, err)
}

type tipRequest struct {
	Address string `json:"address"`
	Amount  int64  `json:"amount"`
	Message string `json:"message"`
}

func (s *Server) tip(w http.ResponseWriter, r *http.Request) {
	var req tipRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, game.ActionTip, err)
		return
	}
	result, err := s.game.TipUser(r.Context(), req.Address, req.Amount, req.Message)
	s.respond(w, r, result, err)
}

func (s *Server) navView(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.snapshot(w, r); ok {
		WriteSuccess(w, http.StatusOK, view.NewNav(snap))
	}
}

func (s *Server) dashboardView(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.snapshot(w, r); ok {
		WriteSuccess(w, http.StatusOK, view.NewDashboard(snap))
	}
}

func (s *Server) arenaView(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.snapshot(w, r); ok {
		WriteSuccess(w, http.StatusOK, view.NewArena(snap))
	}
}

func (s *Server) shopView(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	shop, err := view.NewShop(snap, r.URL.Query().Get("category"))
	if err != nil {
		s.fail(w, r, "", err)
		return
	}
	WriteSuccess(w, http.StatusOK, shop)
}

func (s *Server) trainingView(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.snapshot(w, r); ok {
		WriteSuccess(w, http.StatusOK, view.NewTraining(snap))
	}
}

func (s *Server) socialView(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.snapshot(w, r); ok {
		WriteSuccess(w, http.StatusOK, s.feed.Page(snap))
	}
}

// purchaseItem mints pets from the pets category and buys everything else
func (s *Server) purchaseItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, game.ActionPurchase, err)
		return
	}
	item, ok := models.FindShopItem(id)
	if !ok {
		s.fail(w, r, "", ErrItemNotFound)
		return
	}

	var result game.Result
	if item.Category == models.CategoryPets {
		result, err = s.game.MintPet(r.Context(), item.Name, item.Name)
	} else {
		result, err = s.game.PurchaseItem(r.Context(), item.Name, item.Price)
	}
	s.respond(w, r, result, err)
}

func (s *Server) specialDeal(w http.ResponseWriter, r *http.Request) {
	result, err := s.game.PurchaseItem(r.Context(), models.MysteryBoxName, models.MysteryBoxPrice)
	s.respond(w, r, result, err)
}

func (s *Server) tournament(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"registered":   true,
		"notification": view.Tournament(),
	})
}

type postRequest struct {
	Content string `json:"content"`
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	var req postRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, "", err)
		return
	}
	if err := s.feed.Post(snap.Connected, req.Content); err != nil {
		s.fail(w, r, "", err)
		return
	}
	WriteSuccess(w, http.StatusAccepted, map[string]bool{"accepted": true})
}

func (s *Server) likePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "", err)
		return
	}
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	liked, likes, err := s.feed.ToggleLike(snap.Connected, id)
	if err != nil {
		s.fail(w, r, "", err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"id":    id,
		"liked": liked,
		"likes": likes,
	})
}

func (s *Server) tipPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, game.ActionTip, err)
		return
	}
	address, amount, message, err := s.feed.Tip(id)
	if err != nil {
		s.fail(w, r, "", err)
		return
	}
	result, err := s.game.TipUser(r.Context(), address, amount, message)
	s.respond(w, r, result, err)
}

func (s *Server) sharePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "", err)
		return
	}
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	text, err := s.feed.Share(snap.Connected, id)
	if err != nil {
		s.fail(w, r, "", err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]string{"text": text})
}
